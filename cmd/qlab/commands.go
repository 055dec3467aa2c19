package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-faster/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/oklog/run"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"qlab/circuit"
	"qlab/conf"
	"qlab/exercise"
	"qlab/present"
	"qlab/sim"
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

type listCmd struct{}

func (c *listCmd) Execute(args []string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("id", "name", "title")
	for _, e := range exercise.Registry() {
		t.Row(e.ID, e.Name, e.Title)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}

type runCmd struct {
	Args struct {
		IDs []string `positional-arg-name:"id" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

type exerciseOutput struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Frames []present.Frame `json:"frames"`
}

func (c *runCmd) Execute(args []string) error {
	return withEnv(func(cf *conf.Conf, env *exercise.Env) error {
		var outputs []exerciseOutput
		for _, id := range c.Args.IDs {
			ex, err := exercise.Lookup(id)
			if err != nil {
				return err
			}
			frames, err := runExercise(ex, env)
			if err != nil {
				return errors.Wrapf(err, "exercise %s", ex.ID)
			}
			if cf.Output == "json" {
				outputs = append(outputs, exerciseOutput{ID: ex.ID, Title: ex.Title, Frames: frames})
				continue
			}
			fmt.Fprintln(out, present.RenderAll(frames))
		}
		if cf.Output == "json" {
			return writeJSON(outputs)
		}
		return nil
	})
}

// runExercise runs ex until it finishes or the process is interrupted.
func runExercise(ex exercise.Exercise, env *exercise.Env) ([]present.Frame, error) {
	zap.L().Debug(fmt.Sprintf("running exercise %s (%s)", ex.ID, ex.Name))
	var frames []present.Frame
	err := interruptible(func(ctx context.Context) error {
		var err error
		frames, err = ex.Run(ctx, env)
		return err
	})
	if err != nil {
		return nil, err
	}
	return frames, nil
}

// interruptible runs f in a run.Group next to an interrupt handler. The
// context passed to f is cancelled on SIGINT.
func interruptible(f func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	g.Add(func() error {
		return f(ctx)
	}, func(error) {
		cancel()
	})
	g.Add(run.SignalHandler(ctx, os.Interrupt))
	return g.Run()
}

func writeJSON(v any) error {
	b, err := jsonIter.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal output")
	}
	_, err = out.Write(pretty.Pretty(b))
	return err
}

type viewCmd struct {
	Args struct {
		ID string `positional-arg-name:"id"`
	} `positional-args:"yes" required:"yes"`
}

func (c *viewCmd) Execute(args []string) error {
	ex, err := exercise.Lookup(c.Args.ID)
	if err != nil {
		return err
	}
	return withEnv(func(env *exercise.Env) error {
		frames, err := runExercise(ex, env)
		if err != nil {
			return errors.Wrapf(err, "exercise %s", ex.ID)
		}
		return present.RunViewer(frames)
	})
}

type qasmCmd struct {
	Args struct {
		ID string `positional-arg-name:"id"`
	} `positional-args:"yes" required:"yes"`
}

func (c *qasmCmd) Execute(args []string) error {
	ex, err := exercise.Lookup(c.Args.ID)
	if err != nil {
		return err
	}
	return withEnv(func(s *conf.Setting) error {
		fmt.Fprint(out, ex.Circuit(s).ToQASM())
		return nil
	})
}

type execCmd struct {
	Backend string `long:"backend" description:"backend to run on" default:"qasm" choice:"qasm" choice:"statevector"`
	Shots   int    `long:"shots" description:"number of shots for the qasm backend" default:"1024"`
	Args    struct {
		File string `positional-arg-name:"file"`
	} `positional-args:"yes" required:"yes"`
}

func (c *execCmd) Execute(args []string) error {
	src, err := os.ReadFile(c.Args.File)
	if err != nil {
		return errors.Wrapf(err, "read %s", c.Args.File)
	}
	circ, err := circuit.ParseQASM(string(src))
	if err != nil {
		return errors.Wrapf(err, "parse %s", c.Args.File)
	}
	return withEnv(func(cf *conf.Conf, s *conf.Setting, bs map[string]sim.Backend) error {
		b, ok := bs[c.Backend]
		if !ok {
			return errors.Wrapf(sim.ErrUnknownBackend, "%q", c.Backend)
		}
		var res *sim.Result
		err := interruptible(func(ctx context.Context) error {
			job, err := b.Run(ctx, circ, sim.WithShots(c.Shots), sim.WithSeed(cf.Seed))
			if err != nil {
				return err
			}
			res, err = job.Result()
			return err
		})
		if err != nil {
			return err
		}
		if cf.Output == "json" {
			fmt.Fprintln(out, res.ToString())
			return nil
		}
		fmt.Fprintln(out, present.RenderAll(resultFrames(circ, res, s.Histogram.Width)))
		return nil
	})
}

func resultFrames(c *circuit.Circuit, res *sim.Result, width int) []present.Frame {
	frames := []present.Frame{{Title: "circuit", Body: present.DrawCircuit(c)}}
	if sv, err := res.Statevector(); err == nil {
		frames = append(frames, present.Frame{Title: "state", Body: present.StatevectorTable(sv)})
	}
	if counts, err := res.GetCounts(); err == nil {
		frames = append(frames, present.Frame{
			Title: fmt.Sprintf("counts (%d shots)", res.Shots),
			Body:  present.Histogram(counts, width),
		})
	}
	return frames
}
