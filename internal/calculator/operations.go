package calculator

import (
	"fmt"
	"math"
)

// Operation identifies one arithmetic endpoint.
type Operation int

const (
	Add Operation = iota
	Subtract
	Multiply
	Divide
	Exponentiation
	SquareRoot
	Modulo
)

type operationDef struct {
	name  string
	label string
	arity int
	eval  func(n1, n2 float64) (float64, error)
}

var registry = [...]operationDef{
	Add: {name: "add", label: "Addition", arity: 2, eval: func(n1, n2 float64) (float64, error) {
		return n1 + n2, nil
	}},
	Subtract: {name: "subtract", label: "Subtraction", arity: 2, eval: func(n1, n2 float64) (float64, error) {
		return n1 - n2, nil
	}},
	Multiply: {name: "multiply", label: "Multiplication", arity: 2, eval: func(n1, n2 float64) (float64, error) {
		return n1 * n2, nil
	}},
	Divide: {name: "divide", label: "Division", arity: 2, eval: func(n1, n2 float64) (float64, error) {
		if n2 == 0 {
			return 0, ErrDivisionByZero
		}
		return n1 / n2, nil
	}},
	Exponentiation: {name: "exponentiation", label: "Exponentiation", arity: 2, eval: func(n1, n2 float64) (float64, error) {
		return math.Pow(n1, n2), nil
	}},
	SquareRoot: {name: "square_root", label: "Square root", arity: 1, eval: func(n1, _ float64) (float64, error) {
		return math.Sqrt(n1), nil
	}},
	Modulo: {name: "modulo", label: "Modulo", arity: 2, eval: func(n1, n2 float64) (float64, error) {
		return math.Mod(n1, n2), nil
	}},
}

// Operations returns every supported operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, len(registry))
	for i := range registry {
		ops[i] = Operation(i)
	}
	return ops
}

// Lookup finds an operation by its endpoint name.
func Lookup(name string) (Operation, bool) {
	for i, def := range registry {
		if def.name == name {
			return Operation(i), true
		}
	}
	return 0, false
}

func (op Operation) valid() bool {
	return op >= 0 && int(op) < len(registry)
}

// Name is the endpoint name, e.g. "square_root".
func (op Operation) Name() string {
	if !op.valid() {
		return "unknown"
	}
	return registry[op].name
}

func (op Operation) String() string {
	return op.Name()
}

// Label is the human-readable name used in log messages.
func (op Operation) Label() string {
	if !op.valid() {
		return "Unknown"
	}
	return registry[op].label
}

// Arity is the number of operands the operation reads: 1 or 2.
func (op Operation) Arity() int {
	if !op.valid() {
		return 0
	}
	return registry[op].arity
}

// Eval applies the operation. A NaN or infinite result is reported as
// ErrNonFiniteResult because it has no JSON number representation.
func (op Operation) Eval(in Operands) (float64, error) {
	if !op.valid() {
		return 0, fmt.Errorf("unknown operation %d", int(op))
	}

	result, err := registry[op].eval(in.N1, in.N2)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%s(%g, %g): %w", op.Name(), in.N1, in.N2, ErrNonFiniteResult)
	}

	return result, nil
}
