package circuit

import (
	"sort"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"
)

// Parameters returns the names of all unbound parameters in first-use order.
func (c *Circuit) Parameters() []string {
	var names []string
	seen := make(map[string]bool)
	for _, op := range c.Ops {
		for _, p := range op.Params {
			if p.Symbol == nil || seen[p.Symbol.Name] {
				continue
			}
			seen[p.Symbol.Name] = true
			names = append(names, p.Symbol.Name)
		}
	}
	return names
}

// Bind returns a copy of the circuit with every symbolic parameter replaced by
// its value. Missing and unknown names are all reported together.
func (c *Circuit) Bind(values map[string]float64) (*Circuit, error) {
	params := c.Parameters()
	known := make(map[string]bool, len(params))
	var err error
	for _, name := range params {
		known[name] = true
		if _, ok := values[name]; !ok {
			err = multierr.Append(err, errors.Errorf("parameter %s is not bound", name))
		}
	}
	var unknown []string
	for name := range values {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		err = multierr.Append(err, errors.Errorf("parameter %s is not in the circuit", name))
	}
	if err != nil {
		return nil, err
	}

	cp := c.Copy()
	for i := range cp.Ops {
		for j, p := range cp.Ops[i].Params {
			if p.Symbol != nil {
				cp.Ops[i].Params[j] = Param{Value: values[p.Symbol.Name]}
			}
		}
	}
	return cp, nil
}

// BindVector binds a parameter vector positionally.
func (c *Circuit) BindVector(ps []*Parameter, values []float64) (*Circuit, error) {
	if len(ps) != len(values) {
		return nil, errors.Errorf("got %d values for %d parameters", len(values), len(ps))
	}
	m := make(map[string]float64, len(ps))
	for i, p := range ps {
		m[p.Name] = values[i]
	}
	return c.Bind(m)
}
