package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSessionEvaluateAppendsRecord(t *testing.T) {
	s := NewSession()

	out, err := s.Evaluate("2", "3", OpAdd)

	require.NoError(t, err)
	assert.Equal(t, 5.0, out.Result)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, OpAdd, history[0].Operator)
	assert.Equal(t, 2.0, history[0].OperandA)
	assert.Equal(t, 3.0, history[0].OperandB)
	assert.Equal(t, Number(5), history[0].Result)
	assert.Equal(t, out.Record, history[0])
	assert.NotEqual(t, uuid.Nil, history[0].ID)

	result, ok := s.Result()
	assert.True(t, ok)
	assert.Equal(t, 5.0, result)
}

func TestSessionEvaluateEdgeCases(t *testing.T) {
	s := NewSession()

	out, err := s.Evaluate("10", "0", OpDivide)
	require.NoError(t, err)
	assert.InDelta(t, 1e10, out.Result, 1)
	assert.False(t, math.IsInf(out.Result, 0))

	out, err = s.Evaluate("5", "0", OpModulo)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.Result))
	assert.True(t, math.IsNaN(float64(s.History()[1].Result)))

	out, err = s.Evaluate("3,5", "2", OpMultiply)
	require.NoError(t, err)
	assert.Equal(t, 7.0, out.Result)

	assert.Equal(t, 3, s.HistoryLen())
}

func TestSessionEvaluateCoercesBadOperands(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := NewSession(WithLogger(zap.New(core)))

	out, err := s.Evaluate("abc", "", OpAdd)

	require.NoError(t, err)
	assert.Zero(t, out.Result)
	assert.Len(t, out.Diagnostics(), 2)
	assert.Equal(t, 1, s.HistoryLen())

	entries := logs.FilterMessage("operand is not a number, using 0").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].ContextMap()["raw"])
	assert.Equal(t, "", entries[1].ContextMap()["raw"])
}

func TestSessionUnknownOperatorIsRecordedAsZero(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := NewSession(WithLogger(zap.New(core)))

	out, err := s.Evaluate("2", "3", Operator("?"))

	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Zero(t, out.Result)
	require.Equal(t, 1, s.HistoryLen())
	assert.Equal(t, Operator("?"), s.History()[0].Operator)
	assert.Equal(t, 1, logs.FilterMessage("unknown operator, result defaults to zero").Len())
}

func TestSessionDistinctRecordIDs(t *testing.T) {
	s := NewSession()

	first, err := s.Evaluate("1", "1", OpAdd)
	require.NoError(t, err)
	second, err := s.Evaluate("1", "1", OpAdd)
	require.NoError(t, err)

	assert.NotEqual(t, first.Record.ID, second.Record.ID)
}

func TestSessionStampsRecordsWithClock(t *testing.T) {
	at := time.Date(2024, 5, 6, 14, 3, 9, 0, time.UTC)
	id := uuid.MustParse("00000000-0000-4000-8000-000000000001")
	s := NewSession(
		WithClock(func() time.Time { return at }),
		WithIDSource(func() uuid.UUID { return id }),
	)

	out, err := s.Evaluate("1", "2", OpSubtract)

	require.NoError(t, err)
	assert.Equal(t, id, out.Record.ID)
	assert.Equal(t, "14:03:09", out.Record.Timestamp)
	assert.Equal(t, at, out.Record.CreatedAt)

	s = NewSession(WithClock(func() time.Time { return at }), WithTimestampLayout(time.Kitchen))
	out, err = s.Evaluate("1", "2", OpSubtract)
	require.NoError(t, err)
	assert.Equal(t, "2:03PM", out.Record.Timestamp)
}

// faultSwitch returns an operator table that panics while *fail is true.
func faultSwitch(fail *bool) arithmeticFunc {
	return func(a, b float64, op Operator) (float64, bool) {
		if *fail {
			panic("unexpected fault")
		}
		return arithmetic(a, b, op)
	}
}

func TestSessionEvaluationFault(t *testing.T) {
	fail := false
	core, logs := observer.New(zap.ErrorLevel)
	s := NewSession(withArithmetic(faultSwitch(&fail)), WithLogger(zap.New(core)))

	_, err := s.Evaluate("4", "2", OpDivide)
	require.NoError(t, err)

	fail = true
	out, err := s.Evaluate("4", "2", OpDivide)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEvaluationFault)
	assert.Equal(t, uuid.Nil, out.Record.ID, "no record on failure")
	assert.Equal(t, 1, s.HistoryLen(), "history untouched on failure")

	_, ok := s.Result()
	assert.False(t, ok, "previous result cleared on failure")
	assert.Equal(t, err.Error(), s.Err())
	assert.Contains(t, s.Err(), "a=4 b=2 op=/")
	assert.Equal(t, 1, logs.FilterMessage("calculation failed").Len())
}

func TestSessionSuccessClearsError(t *testing.T) {
	fail := true
	s := NewSession(withArithmetic(faultSwitch(&fail)))

	_, err := s.Evaluate("1", "1", OpAdd)
	require.Error(t, err)
	require.NotEmpty(t, s.Err())

	fail = false
	_, err = s.Evaluate("1", "1", OpAdd)

	require.NoError(t, err)
	assert.Empty(t, s.Err())
}

func TestSessionClearHistory(t *testing.T) {
	s := NewSession()
	for i := 0; i < 4; i++ {
		_, err := s.Evaluate("1", "2", OpAdd)
		require.NoError(t, err)
	}

	assert.Equal(t, 4, s.ClearHistory())
	assert.Empty(t, s.History())

	result, ok := s.Result()
	assert.True(t, ok, "clearing history keeps the last result")
	assert.Equal(t, 3.0, result)
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "abc", NewSession(WithSessionID("abc")).ID())

	_, err := uuid.Parse(NewSession().ID())
	assert.NoError(t, err)
}
