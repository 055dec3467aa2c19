package exercise

import (
	"context"
	"fmt"
	"math"

	"qlab/circuit"
	"qlab/conf"
	"qlab/present"
)

var rotationExercise = Exercise{
	ID:      "04",
	Name:    "rotation",
	Title:   "RX rotation sweep from 0 to pi",
	Circuit: rotationCircuit,
	Run:     runRotation,
}

func rotationCircuit(*conf.Setting) *circuit.Circuit {
	c := circuit.New(1, 0).RX(circuit.NewParameter("angle"), 0)
	c.Name = "rotation"
	return c
}

// rotationAngle is index·π/steps.
func rotationAngle(index, steps int) float64 {
	return float64(index) * math.Pi / float64(steps)
}

func runRotation(ctx context.Context, env *Env) ([]present.Frame, error) {
	steps := env.Setting.Rotation.Steps
	symbolic := rotationCircuit(env.Setting)
	frames := make([]present.Frame, 0, steps+1)
	for index := 0; index <= steps; index++ {
		c, err := symbolic.Bind(map[string]float64{"angle": rotationAngle(index, steps)})
		if err != nil {
			return nil, err
		}
		sv, err := env.state(ctx, c)
		if err != nil {
			return nil, err
		}
		bloch, err := present.Bloch(sv, 0)
		if err != nil {
			return nil, err
		}
		frames = append(frames, present.Frame{
			Title: fmt.Sprintf("Angle = %d * pi / %d", index, steps),
			Body:  present.DrawCircuit(c) + "\n\n" + bloch,
		})
	}
	return frames, nil
}

var shotsExercise = Exercise{
	ID:      "05",
	Name:    "shots",
	Title:   "Sampling a Bell pair with growing shot counts",
	Circuit: shotsCircuit,
	Run:     runShots,
}

func shotsCircuit(*conf.Setting) *circuit.Circuit {
	c := circuit.New(2, 2).H(0).CNOT(0, 1).MeasureAll()
	c.Name = "bell-measured"
	return c
}

func runShots(ctx context.Context, env *Env) ([]present.Frame, error) {
	c := shotsCircuit(env.Setting)
	frames := []present.Frame{{Title: "Shots: circuit", Body: present.DrawCircuit(c)}}
	for _, shots := range env.Setting.Shots.Counts {
		counts, err := env.counts(ctx, c, shots)
		if err != nil {
			return nil, err
		}
		frames = append(frames, present.Frame{
			Title: fmt.Sprintf("Num shots: %d", shots),
			Body:  present.Histogram(counts, env.Setting.Histogram.Width),
		})
	}
	return frames, nil
}
