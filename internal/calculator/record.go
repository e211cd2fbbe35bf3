package calculator

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultTimestampLayout renders record timestamps as wall-clock time.
const DefaultTimestampLayout = time.TimeOnly

// Record is one completed evaluation. Records are values and are never
// modified after the session creates them.
type Record struct {
	ID        uuid.UUID `json:"id"`
	OperandA  float64   `json:"operand_a"`
	OperandB  float64   `json:"operand_b"`
	Operator  Operator  `json:"operator"`
	Result    Number    `json:"result"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

// String renders the record as "a op b = result  [timestamp]".
func (r Record) String() string {
	return fmt.Sprintf("%s %s %s = %s  [%s]",
		Number(r.OperandA), r.Operator, Number(r.OperandB), r.Result, r.Timestamp)
}

// Number is a float64 that survives JSON encoding when it is NaN or
// infinite. Finite values encode as JSON numbers; the others encode as the
// strings "NaN", "+Inf" and "-Inf".
type Number float64

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Finite reports whether n is neither NaN nor infinite.
func (n Number) Finite() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Finite() {
		return json.Marshal(n.String())
	}
	return json.Marshal(float64(n))
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("decode number %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode number: %w", err)
	}
	*n = Number(f)
	return nil
}
