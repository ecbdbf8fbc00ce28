package calculator

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidNumber   = errors.New("invalid number")
	ErrNegativeOperand = errors.New("cannot calculate square root of negative number")
	ErrDivisionByZero  = errors.New("division by zero is not allowed")
	ErrNonFiniteResult = errors.New("result is not a finite number")
)

// ParamError reports an operand parameter that is missing or not a number.
type ParamError struct {
	Param string
	Value string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s is not a valid number", e.Param)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidNumber
}

// Classify maps a validation or computation error to the HTTP status and the
// client-facing message of the response envelope.
//
// Division by zero answers 500 like the rest of the computation failures.
func Classify(err error) (int, string) {
	var pe *ParamError

	switch {
	case errors.As(err, &pe):
		return http.StatusBadRequest, pe.Error()
	case errors.Is(err, ErrNegativeOperand):
		return http.StatusBadRequest, "Cannot calculate square root of negative number"
	case errors.Is(err, ErrDivisionByZero):
		return http.StatusInternalServerError, "Division by zero is not allowed"
	case errors.Is(err, ErrNonFiniteResult):
		return http.StatusInternalServerError, "Result is not a finite number"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
