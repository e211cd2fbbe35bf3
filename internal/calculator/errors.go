package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrNotANumber marks operand text that does not convert to a number.
	ErrNotANumber = errors.New("not a number")

	// ErrNonFinite marks operand text that converts to NaN or an infinity.
	ErrNonFinite = errors.New("not a finite number")

	// ErrParseFault marks an unexpected failure inside the conversion itself.
	ErrParseFault = errors.New("parse fault")

	// ErrEvaluationFault is matched by every *EvaluationError.
	ErrEvaluationFault = errors.New("evaluation fault")
)

// ParseError describes why a raw operand was coerced to zero. It is a
// diagnostic only; the operand is still usable.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("operand %q coerced to 0: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EvaluationError is returned when the arithmetic step faults. It carries
// the operands and operator that were being evaluated.
type EvaluationError struct {
	A     float64
	B     float64
	Op    Operator
	Cause error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("calculation error: %v (a=%g b=%g op=%s)", e.Cause, e.A, e.B, e.Op)
}

func (e *EvaluationError) Unwrap() []error {
	return []error{ErrEvaluationFault, e.Cause}
}
