package circuit

import (
	"fmt"
)

// Parameter is a symbolic angle placeholder that is bound to a value before
// the circuit is executed.
type Parameter struct {
	Name string
}

// NewParameter returns a parameter with the given name.
func NewParameter(name string) *Parameter {
	return &Parameter{Name: name}
}

// ParameterVector returns n parameters named name[0] .. name[n-1].
func ParameterVector(name string, n int) []*Parameter {
	ps := make([]*Parameter, n)
	for i := range n {
		ps[i] = &Parameter{Name: fmt.Sprintf("%s[%d]", name, i)}
	}
	return ps
}

func (p *Parameter) String() string {
	return p.Name
}

func (p *Parameter) param() Param {
	return Param{Symbol: p}
}

// Param is a gate angle: either a number or an unbound symbol.
type Param struct {
	Value  float64
	Symbol *Parameter
}

// Bound reports whether the parameter holds a numeric value.
func (p Param) Bound() bool {
	return p.Symbol == nil
}

func (p Param) String() string {
	if p.Symbol != nil {
		return p.Symbol.Name
	}
	return FormatAngle(p.Value)
}

// Angle is accepted by the rotation builders: Radians or *Parameter.
type Angle interface {
	param() Param
}

// Radians is a numeric rotation angle.
type Radians float64

func (r Radians) param() Param {
	return Param{Value: float64(r)}
}
