package calculator

import (
	"fmt"
	"math"
)

// Operator is the single-character token selecting an arithmetic operation.
// Any string is accepted; tokens outside the six below fall back to zero.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
	OpPower    Operator = "^"
	OpModulo   Operator = "%"
)

// DivisionEpsilon is added to a zero divisor so that division by zero
// yields a large-magnitude quotient instead of a fault.
const DivisionEpsilon = 1e-9

var operatorNames = map[Operator]string{
	OpAdd:      "add",
	OpSubtract: "subtract",
	OpMultiply: "multiply",
	OpDivide:   "divide",
	OpPower:    "power",
	OpModulo:   "modulo",
}

// Operators lists the recognised tokens in display order.
func Operators() []Operator {
	return []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower, OpModulo}
}

// Known reports whether o is one of the six recognised tokens.
func (o Operator) Known() bool {
	_, ok := operatorNames[o]
	return ok
}

// Name returns the operation name ("add", "divide", ...) or "unknown".
func (o Operator) Name() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "unknown"
}

// OperatorByName maps an operation name back to its token.
func OperatorByName(name string) (Operator, bool) {
	for op, n := range operatorNames {
		if n == name {
			return op, true
		}
	}
	return "", false
}

// UnknownOperatorZero is the result of an evaluation whose operator token is
// not recognised. No error is reported for it.
const UnknownOperatorZero = 0.0

// arithmeticFunc computes a op b. The bool is false when op is not
// recognised and the zero fallback was used.
type arithmeticFunc func(a, b float64, op Operator) (float64, bool)

// arithmetic is the operator table. Results may be NaN or infinite; they are
// returned unmodified.
func arithmetic(a, b float64, op Operator) (float64, bool) {
	switch op {
	case OpAdd:
		return a + b, true
	case OpSubtract:
		return a - b, true
	case OpMultiply:
		return a * b, true
	case OpDivide:
		if b == 0 {
			return a / (b + DivisionEpsilon), true
		}
		return a / b, true
	case OpPower:
		return math.Pow(a, b), true
	case OpModulo:
		return math.Mod(a, b), true
	}
	return UnknownOperatorZero, false
}

// Outcome is the result of one evaluation.
type Outcome struct {
	A        ParseResult
	B        ParseResult
	Operator Operator
	Result   float64
	// Fallback is set when Operator was not recognised and Result is the
	// zero default.
	Fallback bool
	// Record is the history entry; zero when the evaluation failed.
	Record Record
}

// Diagnostics returns the parse diagnostics of both operands, if any.
func (o Outcome) Diagnostics() []error {
	var diags []error
	for _, p := range []ParseResult{o.A, o.B} {
		if p.Err != nil {
			diags = append(diags, p.Err)
		}
	}
	return diags
}

// Apply evaluates a op b with the standard operator table. An error is
// returned only when the arithmetic itself faults; NaN and infinities are
// ordinary results.
func Apply(a, b float64, op Operator) (Outcome, error) {
	return applyWith(arithmetic, a, b, op)
}

func applyWith(fn arithmeticFunc, a, b float64, op Operator) (out Outcome, err error) {
	out.Operator = op
	out.A.Value = a
	out.B.Value = b

	defer func() {
		if r := recover(); r != nil {
			out.Result = 0
			out.Fallback = false
			err = &EvaluationError{A: a, B: b, Op: op, Cause: fmt.Errorf("%v", r)}
		}
	}()

	result, known := fn(a, b, op)
	out.Result = result
	out.Fallback = !known
	return out, nil
}
