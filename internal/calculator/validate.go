package calculator

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Operands holds the parsed query parameters of one request. N2 is zero for
// unary operations.
type Operands struct {
	N1 float64
	N2 float64
}

// ParseOperands reads n1 (and n2 for binary operations) from query and
// applies the operation's domain restrictions. n1 is checked before n2.
func ParseOperands(op Operation, query url.Values) (Operands, error) {
	var in Operands

	n1, err := parseOperand(query, "n1")
	if err != nil {
		return Operands{}, err
	}
	in.N1 = n1

	if op.Arity() == 2 {
		n2, err := parseOperand(query, "n2")
		if err != nil {
			return Operands{}, err
		}
		in.N2 = n2
	}

	switch op {
	case SquareRoot:
		if in.N1 < 0 {
			return Operands{}, ErrNegativeOperand
		}
	case Divide:
		if in.N2 == 0 {
			return Operands{}, ErrDivisionByZero
		}
	}

	return in, nil
}

// decimalNumber admits plain decimal notation with an optional exponent.
// ParseFloat alone would also take hex floats, digit underscores and inf/nan.
var decimalNumber = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

func parseOperand(query url.Values, param string) (float64, error) {
	raw := strings.TrimSpace(query.Get(param))
	if raw == "" {
		return 0, &ParamError{Param: param}
	}

	if !decimalNumber.MatchString(raw) {
		return 0, &ParamError{Param: param, Value: raw}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParamError{Param: param, Value: raw}
	}

	return v, nil
}
