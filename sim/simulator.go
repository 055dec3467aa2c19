package sim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"qlab/circuit"
)

var ErrUnknownBackend = errors.New("unknown backend")

const (
	StatevectorBackend = "statevector"
	QasmBackend        = "qasm"
)

// Backend executes circuits. Run blocks until the job has finished.
type Backend interface {
	Name() string
	Run(ctx context.Context, c *circuit.Circuit, opts ...RunOption) (*Job, error)
}

// Backends returns a fresh instance of every built-in backend keyed by name.
func Backends() map[string]Backend {
	return map[string]Backend{
		StatevectorBackend: NewStatevectorSimulator(),
		QasmBackend:        NewQasmSimulator(),
	}
}

// GetBackend looks a backend up by name.
func GetBackend(name string) (Backend, error) {
	b, ok := Backends()[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", name)
	}
	return b, nil
}

// StatevectorSimulator evolves the exact state. Measurements collapse the
// state using the run seed, so the result holds one shot of counts.
type StatevectorSimulator struct{}

func NewStatevectorSimulator() *StatevectorSimulator {
	return &StatevectorSimulator{}
}

func (s *StatevectorSimulator) Name() string { return StatevectorBackend }

func (s *StatevectorSimulator) Run(ctx context.Context, c *circuit.Circuit, opts ...RunOption) (*Job, error) {
	cfg := newRunConfig(opts)
	snap, err := prepare(c)
	if err != nil {
		return nil, err
	}
	job := newJob(s.Name())
	start := time.Now()
	res, err := func() (*Result, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sv, memory, _, err := evolve(snap, cfg.rng(), false)
		if err != nil {
			return nil, err
		}
		r := &Result{
			Backend:       s.Name(),
			Shots:         1,
			Seed:          cfg.Seed,
			State:         sv,
			Probabilities: labelledProbabilities(sv),
		}
		if snap.NumClbits() > 0 {
			r.Counts = Counts{countsKey(snap, memory): 1}
		}
		return r, nil
	}()
	if res != nil {
		res.ExecutionTime = time.Since(start)
	}
	job.finish(res, err)
	return job, err
}

// QasmSimulator samples measurement outcomes. Circuits whose measurements are
// all terminal are evolved once and sampled; others are simulated shot by shot.
type QasmSimulator struct{}

func NewQasmSimulator() *QasmSimulator {
	return &QasmSimulator{}
}

func (s *QasmSimulator) Name() string { return QasmBackend }

func (s *QasmSimulator) Run(ctx context.Context, c *circuit.Circuit, opts ...RunOption) (*Job, error) {
	cfg := newRunConfig(opts)
	if cfg.Shots <= 0 {
		return nil, errors.Errorf("shots(%d) must be greater than 0", cfg.Shots)
	}
	snap, err := prepare(c)
	if err != nil {
		return nil, err
	}
	job := newJob(s.Name())
	start := time.Now()
	var counts Counts
	if snap.NumClbits() == 0 {
		zap.L().Warn("circuit has no classical bits, nothing to sample")
	} else if sampleable(snap) {
		zap.L().Debug(fmt.Sprintf("sampling %d shots from a single evolution", cfg.Shots))
		counts, err = sampleCounts(ctx, snap, cfg)
	} else {
		zap.L().Debug(fmt.Sprintf("simulating %d shots one by one", cfg.Shots))
		counts, err = shotCounts(ctx, snap, cfg)
	}
	var res *Result
	if err == nil {
		res = &Result{
			Backend:       s.Name(),
			Shots:         cfg.Shots,
			Seed:          cfg.Seed,
			Counts:        counts,
			ExecutionTime: time.Since(start),
		}
	}
	job.finish(res, err)
	return job, err
}

// prepare snapshots the circuit so later builder calls cannot change the run,
// and rejects circuits that cannot be executed.
func prepare(c *circuit.Circuit) (*circuit.Circuit, error) {
	if c == nil {
		return nil, errors.New("nil circuit")
	}
	snap := c.Copy()
	err := snap.Validate()
	if ps := snap.Parameters(); len(ps) > 0 {
		err = multierr.Append(err, errors.Errorf("unbound parameters: %s", strings.Join(ps, ", ")))
	}
	if err != nil {
		return nil, errors.Wrap(err, "invalid circuit")
	}
	return snap, nil
}

type measurement struct {
	qubit int
	clbit int
}

// evolve runs every op once. With deferred set, measurements are not applied
// but returned so the caller can sample them from the final state.
func evolve(c *circuit.Circuit, rng *rand.Rand, deferred bool) (*StateVector, []int, []measurement, error) {
	sv := NewStateVector(c.NumQubits())
	memory := make([]int, c.NumClbits())
	var pending []measurement
	for i, op := range c.Ops {
		if !op.Condition.Satisfied(memory) {
			continue
		}
		switch op.Kind {
		case circuit.KindGate:
			if err := sv.ApplyGate(op.Gate, op.Qubits, op.Angles()); err != nil {
				return nil, nil, nil, errors.Wrapf(err, "op %d", i)
			}
		case circuit.KindMeasure:
			for k, q := range op.Qubits {
				if deferred {
					pending = append(pending, measurement{qubit: q, clbit: op.Clbits[k]})
					continue
				}
				memory[op.Clbits[k]] = sv.Measure(q, rng)
			}
		case circuit.KindReset:
			for _, q := range op.Qubits {
				sv.Reset(q, rng)
			}
		case circuit.KindInitialize:
			sv.Initialize(op.Qubits, op.Amplitudes, rng)
		case circuit.KindBarrier:
		}
	}
	return sv, memory, pending, nil
}

// sampleable reports whether a single evolution is enough to sample every shot:
// nothing happens to a qubit after it is measured and no op is stochastic.
func sampleable(c *circuit.Circuit) bool {
	if c.HasMidCircuitMeasurement() {
		return false
	}
	touched := make(map[int]bool)
	for _, op := range c.Ops {
		switch op.Kind {
		case circuit.KindReset:
			return false
		case circuit.KindInitialize:
			for _, q := range op.Qubits {
				if touched[q] {
					return false
				}
			}
		case circuit.KindBarrier:
			continue
		}
		for _, q := range op.Qubits {
			touched[q] = true
		}
	}
	return true
}

func sampleCounts(ctx context.Context, c *circuit.Circuit, cfg RunConfig) (Counts, error) {
	rng := cfg.rng()
	sv, _, pending, err := evolve(c, rng, true)
	if err != nil {
		return nil, err
	}
	probs := sv.Probabilities()
	cum := make([]float64, len(probs))
	total := 0.0
	for i, p := range probs {
		total += p
		cum[i] = total
	}

	counts := make(Counts)
	memory := make([]int, c.NumClbits())
	for shot := 0; shot < cfg.Shots; shot++ {
		if shot%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		r := rng.Float64() * total
		idx := sort.Search(len(cum), func(i int) bool { return cum[i] > r })
		idx = min(idx, len(cum)-1)
		for _, m := range pending {
			memory[m.clbit] = (idx >> m.qubit) & 1
		}
		counts[countsKey(c, memory)]++
	}
	return counts, nil
}

func shotCounts(ctx context.Context, c *circuit.Circuit, cfg RunConfig) (Counts, error) {
	rng := cfg.rng()
	counts := make(Counts)
	for shot := 0; shot < cfg.Shots; shot++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_, memory, _, err := evolve(c, rng, false)
		if err != nil {
			return nil, err
		}
		counts[countsKey(c, memory)]++
	}
	return counts, nil
}

// countsKey formats classical memory the way outcomes are usually printed:
// each register with its highest bit first, registers separated by a space
// and the last declared register leftmost.
func countsKey(c *circuit.Circuit, memory []int) string {
	parts := make([]string, 0, len(c.CRegs))
	for r := len(c.CRegs) - 1; r >= 0; r-- {
		reg := c.CRegs[r]
		var sb strings.Builder
		for i := reg.Size - 1; i >= 0; i-- {
			if memory[reg.C(i)] != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, " ")
}

func labelledProbabilities(sv *StateVector) map[string]float64 {
	out := make(map[string]float64)
	for i, p := range sv.Probabilities() {
		if p > 1e-12 {
			out[sv.Label(i)] = p
		}
	}
	return out
}
