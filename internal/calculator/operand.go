package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseFloat is swapped in tests to exercise the fault path.
var parseFloat = strconv.ParseFloat

// ParseResult is the outcome of leniently parsing one raw operand.
type ParseResult struct {
	Raw   string
	Value float64
	// Err is non-nil when Value was coerced to 0. It never means the
	// caller should stop.
	Err error
}

// Coerced reports whether the raw input was replaced by 0.
func (p ParseResult) Coerced() bool {
	return p.Err != nil
}

// ParseOperand converts raw operand text into a finite number. Surrounding
// whitespace is ignored and the first comma is read as a decimal point, so
// "3,5" parses as 3.5. Anything that does not yield a finite number becomes
// 0 with a *ParseError attached. ParseOperand never panics.
func ParseOperand(raw string) (res ParseResult) {
	res.Raw = raw

	defer func() {
		if r := recover(); r != nil {
			res.Value = 0
			res.Err = &ParseError{Raw: raw, Err: fmt.Errorf("%w: %v", ErrParseFault, r)}
		}
	}()

	cleaned := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)

	v, err := parseFloat(cleaned, 64)
	switch {
	case err == nil:
	case errors.Is(err, strconv.ErrRange) && !math.IsInf(v, 0):
		// underflow: v is already the nearest representable value
	case errors.Is(err, strconv.ErrRange):
		res.Err = &ParseError{Raw: raw, Err: ErrNonFinite}
		return res
	default:
		res.Err = &ParseError{Raw: raw, Err: ErrNotANumber}
		return res
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		res.Err = &ParseError{Raw: raw, Err: ErrNonFinite}
		return res
	}

	res.Value = v
	return res
}
