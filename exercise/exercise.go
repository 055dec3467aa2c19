// Package exercise holds the teaching exercises. Each one builds a circuit,
// runs it on the simulators and returns the frames to show.
package exercise

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"qlab/circuit"
	"qlab/conf"
	"qlab/present"
	"qlab/sim"
)

var ErrUnknownExercise = errors.New("unknown exercise")

// Exercise is one numbered lesson.
type Exercise struct {
	ID    string
	Name  string
	Title string

	// Circuit returns the circuit the lesson is about, with symbolic
	// parameters left unbound.
	Circuit func(s *conf.Setting) *circuit.Circuit
	Run     func(ctx context.Context, env *Env) ([]present.Frame, error)
}

// Env is what an exercise runs against.
type Env struct {
	Statevector sim.Backend
	Sampler     sim.Backend
	Setting     *conf.Setting
	Seed        uint64
}

// NewEnv returns an environment backed by the built-in simulators.
func NewEnv(setting *conf.Setting, seed uint64) *Env {
	return &Env{
		Statevector: sim.NewStatevectorSimulator(),
		Sampler:     sim.NewQasmSimulator(),
		Setting:     setting,
		Seed:        seed,
	}
}

func (e *Env) state(ctx context.Context, c *circuit.Circuit) (*sim.StateVector, error) {
	job, err := e.Statevector.Run(ctx, c, sim.WithSeed(e.Seed))
	if err != nil {
		return nil, err
	}
	res, err := job.Result()
	if err != nil {
		return nil, err
	}
	return res.Statevector()
}

func (e *Env) counts(ctx context.Context, c *circuit.Circuit, shots int) (sim.Counts, error) {
	job, err := e.Sampler.Run(ctx, c, sim.WithShots(shots), sim.WithSeed(e.Seed))
	if err != nil {
		return nil, err
	}
	res, err := job.Result()
	if err != nil {
		return nil, err
	}
	zap.L().Debug(fmt.Sprintf("%s: %d shots in %s", c.Name, shots, res.ExecutionTime))
	return res.GetCounts()
}

var registry = []Exercise{
	hadamardExercise,
	bellExercise,
	rotationExercise,
	shotsExercise,
	teleportExercise,
	teleportHistogramExercise,
	ansatzExercise,
}

// Registry returns every exercise ordered by ID.
func Registry() []Exercise {
	out := make([]Exercise, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup finds an exercise by ID ("02" or "2") or by name ("bell").
func Lookup(key string) (Exercise, error) {
	if n, err := strconv.Atoi(key); err == nil {
		key = fmt.Sprintf("%02d", n)
	}
	for _, e := range registry {
		if e.ID == key || e.Name == key {
			return e, nil
		}
	}
	return Exercise{}, errors.Wrapf(ErrUnknownExercise, "%q", key)
}
