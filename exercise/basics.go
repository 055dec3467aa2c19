package exercise

import (
	"context"

	"qlab/circuit"
	"qlab/conf"
	"qlab/present"
)

var hadamardExercise = Exercise{
	ID:      "01",
	Name:    "hadamard",
	Title:   "Hadamard gate on one qubit",
	Circuit: hadamardCircuit,
	Run:     runHadamard,
}

func hadamardCircuit(*conf.Setting) *circuit.Circuit {
	c := circuit.New(1, 0).H(0)
	c.Name = "hadamard"
	return c
}

func runHadamard(ctx context.Context, env *Env) ([]present.Frame, error) {
	c := hadamardCircuit(env.Setting)
	sv, err := env.state(ctx, c)
	if err != nil {
		return nil, err
	}
	bloch, err := present.Bloch(sv, 0)
	if err != nil {
		return nil, err
	}
	return []present.Frame{
		{Title: "Hadamard: circuit", Body: present.DrawCircuit(c)},
		{Title: "Hadamard: state", Body: present.StatevectorText(sv) + "\n\n" + present.StatevectorTable(sv)},
		{Title: "Hadamard: Bloch sphere", Body: bloch},
	}, nil
}

var bellExercise = Exercise{
	ID:      "02",
	Name:    "bell",
	Title:   "Bell state with H and CNOT",
	Circuit: bellCircuit,
	Run:     runBell,
}

func bellCircuit(*conf.Setting) *circuit.Circuit {
	c := circuit.New(2, 0).H(0).CNOT(0, 1)
	c.Name = "bell"
	return c
}

func runBell(ctx context.Context, env *Env) ([]present.Frame, error) {
	c := bellCircuit(env.Setting)
	sv, err := env.state(ctx, c)
	if err != nil {
		return nil, err
	}
	body := present.StatevectorText(sv) + "\n" +
		present.StatevectorLatex(sv) + "\n\n" +
		present.StatevectorTable(sv)
	return []present.Frame{
		{Title: "Bell: circuit", Body: present.DrawCircuit(c)},
		{Title: "Bell: state", Body: body},
	}, nil
}
