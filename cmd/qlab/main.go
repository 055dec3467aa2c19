package main

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	flags "github.com/jessevdk/go-flags"
	"github.com/massn/envordot"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"qlab/conf"
	"qlab/exercise"
	qlog "qlab/log"
	"qlab/sim"
)

var parser *flags.Parser
var app *App

// out receives command output. Logs go to stderr or the log file.
var out io.Writer = os.Stdout

func init() {
	if err := envordot.Load(false, ".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Not found \".env\" file. Use only environment variables. Reason:%s\n", err.Error())
	}
	app = &App{}
	setParser(app)
}

type App struct {
	Conf conf.Conf `group:"qlab options"`
}

func setParser(a *App) {
	parser = flags.NewParser(a, flags.Default)
	parser.ShortDescription = "quantum circuit exercises"
	parser.LongDescription = heredoc.Doc(`
		qlab builds small quantum circuits, runs them on a state vector or
		sampling simulator and draws the results in the terminal.
	`)
	parser.AddCommand("list", "list exercises", "list the available exercises", &listCmd{})
	parser.AddCommand("run", "run exercises", "run exercises and print their frames", &runCmd{})
	parser.AddCommand("view", "view an exercise", "page through the frames of an exercise", &viewCmd{})
	parser.AddCommand("qasm", "print OpenQASM", "print the circuit of an exercise as OpenQASM 2.0", &qasmCmd{})
	parser.AddCommand("exec", "execute a QASM file", heredoc.Doc(`
		execute an OpenQASM 2.0 file on a backend and print the circuit
		with its state or measurement histogram
	`), &execCmd{})
	parser.CommandHandler = commandHandler
}

// commandHandler installs the logger before any command runs.
func commandHandler(cmd flags.Commander, args []string) error {
	if cmd == nil {
		return nil
	}
	logger, err := qlog.Setup(&app.Conf)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if err := cmd.Execute(args); err != nil {
		zap.L().Error(fmt.Sprintf("failed to execute command/reason:%s", err))
		return err
	}
	return nil
}

func parse() {
	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			code = 0
		}
		os.Exit(code)
	}
}

func (a *App) provideDIContainer() (*dig.Container, error) {
	c := dig.New()
	if err := c.Provide(func() *conf.Conf { return &a.Conf }); err != nil {
		return nil, err
	}
	if err := c.Provide(func(cf *conf.Conf) (*conf.Setting, error) {
		s, err := conf.ParseSettingFromPath(cf.SettingPath)
		if err != nil || cf.Theta == "" {
			return s, err
		}
		if err := s.OverrideTheta(cf.Theta); err != nil {
			return nil, err
		}
		return s, nil
	}); err != nil {
		return nil, err
	}
	if err := c.Provide(sim.Backends); err != nil {
		return nil, err
	}
	if err := c.Provide(func(cf *conf.Conf, s *conf.Setting, bs map[string]sim.Backend) *exercise.Env {
		return &exercise.Env{
			Statevector: bs[sim.StatevectorBackend],
			Sampler:     bs[sim.QasmBackend],
			Setting:     s,
			Seed:        cf.Seed,
		}
	}); err != nil {
		return nil, err
	}
	return c, nil
}

// withEnv resolves the exercise environment from the container.
func withEnv(f any) error {
	c, err := app.provideDIContainer()
	if err != nil {
		return err
	}
	return c.Invoke(f)
}

func main() {
	parse()
}
