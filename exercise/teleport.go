package exercise

import (
	"context"
	"math"

	"qlab/circuit"
	"qlab/conf"
	"qlab/present"
)

// teleport is the three qubit teleportation circuit with Alice's pair, Bob's
// qubit and one classical register for each side.
type teleport struct {
	c      *circuit.Circuit
	alice  circuit.QuantumRegister
	bob    circuit.QuantumRegister
	aliceC circuit.ClassicalRegister
	bobC   circuit.ClassicalRegister
}

func newTeleport() *teleport {
	c := circuit.NewEmpty()
	c.Name = "teleport"
	t := &teleport{c: c}
	t.alice = c.AddQuantumRegister("alice", 2)
	t.bob = c.AddQuantumRegister("bob", 1)
	t.aliceC = c.AddClassicalRegister("alice-c", 2)
	t.bobC = c.AddClassicalRegister("bob-c", 1)
	return t
}

type teleportStage struct {
	title string
	apply func(t *teleport)
}

// teleportStages moves the state √p0|0⟩ + √(1-p0)|1⟩ from alice[0] to bob.
func teleportStages(p0 float64) []teleportStage {
	return []teleportStage{
		{"After: Prepare circuit", func(*teleport) {}},
		{"After: Initialize", func(t *teleport) {
			t.c.InitializeReal([]float64{math.Sqrt(p0), math.Sqrt(1 - p0)}, t.alice.Q(0))
		}},
		{"After: Entanglement between A and B", func(t *teleport) {
			t.c.H(t.alice.Q(1)).CX(t.alice.Q(1), t.bob.Q(0))
		}},
		{"After: Entanglement in A", func(t *teleport) {
			t.c.Barrier().CX(t.alice.Q(0), t.alice.Q(1)).H(t.alice.Q(0))
		}},
		{"After: First measurement", func(t *teleport) {
			t.c.Barrier().Barrier().Measure(t.alice.Q(0), t.aliceC.C(0))
		}},
		{"After: Second measurement", func(t *teleport) {
			t.c.Measure(t.alice.Q(1), t.aliceC.C(1))
		}},
		{"After: Bob's corrections", func(t *teleport) {
			t.c.Barrier().
				X(t.bob.Q(0)).CIf(t.aliceC.C(1), 1).
				Z(t.bob.Q(0)).CIf(t.aliceC.C(0), 1)
		}},
	}
}

func buildTeleport(p0 float64) *teleport {
	t := newTeleport()
	for _, s := range teleportStages(p0) {
		s.apply(t)
	}
	return t
}

var teleportExercise = Exercise{
	ID:    "11",
	Name:  "teleport",
	Title: "Quantum teleportation, stage by stage",
	Circuit: func(s *conf.Setting) *circuit.Circuit {
		return buildTeleport(s.Teleport.P0).c
	},
	Run: runTeleport,
}

// runTeleport shows the state after each stage. Every stage reruns the whole
// circuit so far with the same seed, so the measurement outcomes agree
// between frames.
func runTeleport(ctx context.Context, env *Env) ([]present.Frame, error) {
	t := newTeleport()
	var frames []present.Frame
	for _, s := range teleportStages(env.Setting.Teleport.P0) {
		s.apply(t)
		sv, err := env.state(ctx, t.c)
		if err != nil {
			return nil, err
		}
		frames = append(frames, present.Frame{
			Title: s.title,
			Body:  present.StatevectorLatex(sv) + "\n\n" + present.StatevectorText(sv),
		})
	}
	frames = append(frames, present.Frame{Title: "Teleport: circuit", Body: present.DrawCircuit(t.c)})
	return frames, nil
}

var teleportHistogramExercise = Exercise{
	ID:      "12",
	Name:    "teleport-histogram",
	Title:   "Measuring the teleported qubit",
	Circuit: teleportHistogramCircuit,
	Run:     runTeleportHistogram,
}

func teleportHistogramCircuit(s *conf.Setting) *circuit.Circuit {
	t := buildTeleport(s.Teleport.P0)
	t.c.Barrier().Measure(t.bob.Q(0), t.bobC.C(0))
	return t.c
}

func runTeleportHistogram(ctx context.Context, env *Env) ([]present.Frame, error) {
	c := teleportHistogramCircuit(env.Setting)
	counts, err := env.counts(ctx, c, env.Setting.Teleport.Shots)
	if err != nil {
		return nil, err
	}
	return []present.Frame{
		{Title: "Teleport: circuit", Body: present.DrawCircuit(c)},
		{Title: "Teleport: histogram", Body: present.Histogram(counts, env.Setting.Histogram.Width)},
	}, nil
}
