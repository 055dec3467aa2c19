package exercise

import (
	"context"
	"fmt"
	"strings"

	"qlab/circuit"
	"qlab/conf"
	"qlab/present"
)

var ansatzExercise = Exercise{
	ID:    "13",
	Name:  "ansatz",
	Title: "Parameterized ansatz with a ring of CNOTs",
	Circuit: func(s *conf.Setting) *circuit.Circuit {
		c, _ := ansatz(s.Ansatz.Qubits)
		return c
	},
	Run: runAnsatz,
}

// ansatz applies H and RY(theta[i]) to every qubit, then CX(i, i+1 mod n).
func ansatz(n int) (*circuit.Circuit, []*circuit.Parameter) {
	thetas := circuit.ParameterVector("theta", n)
	c := circuit.New(n, 0)
	c.Name = "ansatz"
	for i := range n {
		c.H(i).RY(thetas[i], i)
	}
	for i := range n {
		c.CX(i, (i+1)%n)
	}
	return c, thetas
}

func runAnsatz(ctx context.Context, env *Env) ([]present.Frame, error) {
	s := env.Setting.Ansatz
	c, thetas := ansatz(s.Qubits)
	bound, err := c.BindVector(thetas, s.Theta)
	if err != nil {
		return nil, err
	}
	sv, err := env.state(ctx, bound)
	if err != nil {
		return nil, err
	}

	values := make([]string, len(thetas))
	for i, p := range thetas {
		values[i] = fmt.Sprintf("%s = %s", p, circuit.FormatAngle(s.Theta[i]))
	}
	return []present.Frame{
		{Title: "Ansatz: circuit", Body: present.DrawCircuit(c) + "\n\nparameters: " + strings.Join(c.Parameters(), ", ")},
		{Title: "Ansatz: bound", Body: present.DrawCircuit(bound) + "\n\n" + strings.Join(values, "\n")},
		{Title: "Ansatz: state", Body: present.StatevectorTable(sv)},
	}, nil
}
