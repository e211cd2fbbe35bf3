package calculator

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session owns the state of one interactive calculator session: the last
// result, the outstanding error message and the history ledger.
//
// A Session has exactly one logical caller and is not safe for concurrent
// use; see SessionStore for shared access.
type Session struct {
	id     string
	logger *zap.Logger
	now    func() time.Time
	newID  func() uuid.UUID
	layout string
	arith  arithmeticFunc

	ledger    Ledger
	result    float64
	hasResult bool
	errMsg    string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for parse and evaluation diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDSource overrides the generator for record identifiers.
func WithIDSource(newID func() uuid.UUID) Option {
	return func(s *Session) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithTimestampLayout sets the time.Format layout of Record.Timestamp.
func WithTimestampLayout(layout string) Option {
	return func(s *Session) {
		if layout != "" {
			s.layout = layout
		}
	}
}

// WithSessionID names the session. NewSession mints a UUID otherwise.
func WithSessionID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// withArithmetic replaces the operator table.
func withArithmetic(fn arithmeticFunc) Option {
	return func(s *Session) {
		s.arith = fn
	}
}

// NewSession returns an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.New,
		layout: DefaultTimestampLayout,
		arith:  arithmetic,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Evaluate parses both raw operands, applies op and, on success, appends a
// new Record to the history. Any previous error is cleared first. On an
// evaluation fault the returned error is an *EvaluationError, the last
// result is cleared, and the history is left untouched.
func (s *Session) Evaluate(rawA, rawB string, op Operator) (Outcome, error) {
	s.errMsg = ""

	a := s.parse(rawA)
	b := s.parse(rawB)

	out, err := applyWith(s.arith, a.Value, b.Value, op)
	out.A, out.B = a, b
	if err != nil {
		s.errMsg = err.Error()
		s.result, s.hasResult = 0, false
		s.logger.Error("calculation failed",
			zap.Error(err),
			zap.Float64("a", a.Value),
			zap.Float64("b", b.Value),
			zap.String("operator", string(op)),
		)
		return out, err
	}

	if out.Fallback {
		s.logger.Warn("unknown operator, result defaults to zero",
			zap.String("operator", string(op)),
		)
	}

	now := s.now()
	out.Record = Record{
		ID:        s.newID(),
		OperandA:  a.Value,
		OperandB:  b.Value,
		Operator:  op,
		Result:    Number(out.Result),
		Timestamp: now.Format(s.layout),
		CreatedAt: now,
	}
	s.ledger.Append(out.Record)
	s.result, s.hasResult = out.Result, true

	return out, nil
}

func (s *Session) parse(raw string) ParseResult {
	p := ParseOperand(raw)
	if p.Err == nil {
		return p
	}

	if errors.Is(p.Err, ErrParseFault) {
		s.logger.Error("operand conversion faulted, using 0", zap.String("raw", raw), zap.Error(p.Err))
	} else {
		s.logger.Warn("operand is not a number, using 0", zap.String("raw", raw))
	}
	return p
}

// Result returns the last successful result. The bool is false before the
// first evaluation and after a failed one.
func (s *Session) Result() (float64, bool) {
	return s.result, s.hasResult
}

// Err returns the outstanding error message, or "" when there is none.
func (s *Session) Err() string {
	return s.errMsg
}

// History returns a snapshot of the recorded evaluations, oldest first.
func (s *Session) History() []Record {
	return s.ledger.Snapshot()
}

// HistoryLen returns the number of recorded evaluations.
func (s *Session) HistoryLen() int {
	return s.ledger.Len()
}

// ClearHistory empties the history and returns how many records were
// dropped. The last result and error are kept.
func (s *Session) ClearHistory() int {
	return s.ledger.Clear()
}
