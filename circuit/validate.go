package circuit

import (
	"math"
	"math/cmplx"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"
)

// MaxQubits is the largest circuit the simulators accept. The state vector
// holds 2^n complex128 amplitudes, 256 MiB at this size.
const MaxQubits = 24

// normTolerance bounds |Σ|a|² - 1| for initialization vectors.
const normTolerance = 1e-9

// Validate checks every op against the declared registers and returns all
// violations combined, or nil.
func (c *Circuit) Validate() error {
	err := multierr.Combine(c.buildErrs...)
	nq, nc := c.NumQubits(), c.NumClbits()
	if nq > MaxQubits {
		err = multierr.Append(err, errors.Errorf("%d qubits exceed the limit of %d", nq, MaxQubits))
	}
	for i, op := range c.Ops {
		err = multierr.Append(err, validateOp(i, op, nq, nc))
	}
	return err
}

func validateOp(i int, op Op, nq, nc int) error {
	var err error
	seen := make(map[int]bool, len(op.Qubits))
	for _, q := range op.Qubits {
		if q < 0 || q >= nq {
			err = multierr.Append(err, errors.Errorf("op %d (%s): qubit %d out of range [0,%d)", i, op.Kind, q, nq))
		}
		if seen[q] {
			err = multierr.Append(err, errors.Errorf("op %d (%s): qubit %d used twice", i, op.Kind, q))
		}
		seen[q] = true
	}

	switch op.Kind {
	case KindGate:
		shape, ok := gateShapes[op.Gate]
		if !ok {
			return multierr.Append(err, errors.Errorf("op %d: unknown gate %q", i, op.Gate))
		}
		if len(op.Qubits) != shape.qubits {
			err = multierr.Append(err, errors.Errorf("op %d (%s): want %d qubits, got %d", i, op.Gate, shape.qubits, len(op.Qubits)))
		}
		if len(op.Params) != shape.params {
			err = multierr.Append(err, errors.Errorf("op %d (%s): want %d parameters, got %d", i, op.Gate, shape.params, len(op.Params)))
		}
	case KindMeasure:
		if len(op.Qubits) != len(op.Clbits) {
			err = multierr.Append(err, errors.Errorf("op %d (measure): %d qubits but %d clbits", i, len(op.Qubits), len(op.Clbits)))
		}
		for _, b := range op.Clbits {
			if b < 0 || b >= nc {
				err = multierr.Append(err, errors.Errorf("op %d (measure): clbit %d out of range [0,%d)", i, b, nc))
			}
		}
	case KindInitialize:
		err = multierr.Append(err, validateAmplitudes(i, op))
	case KindBarrier, KindReset:
	default:
		err = multierr.Append(err, errors.Errorf("op %d: unknown kind %d", i, op.Kind))
	}

	if op.Condition != nil {
		if len(op.Condition.Clbits) == 0 {
			err = multierr.Append(err, errors.Errorf("op %d: condition without clbits", i))
		}
		for _, b := range op.Condition.Clbits {
			if b < 0 || b >= nc {
				err = multierr.Append(err, errors.Errorf("op %d: condition clbit %d out of range [0,%d)", i, b, nc))
			}
		}
	}
	return err
}

func validateAmplitudes(i int, op Op) error {
	if len(op.Qubits) == 0 {
		return errors.Errorf("op %d (initialize): no qubits", i)
	}
	if want := 1 << len(op.Qubits); len(op.Amplitudes) != want {
		return errors.Errorf("op %d (initialize): %d qubits need %d amplitudes, got %d", i, len(op.Qubits), want, len(op.Amplitudes))
	}
	sum := 0.0
	for _, a := range op.Amplitudes {
		m := cmplx.Abs(a)
		sum += m * m
	}
	if math.Abs(sum-1) > normTolerance {
		return errors.Errorf("op %d (initialize): sum of probabilities is %g, not 1", i, sum)
	}
	return nil
}
