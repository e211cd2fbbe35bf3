package calculator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// SessionHeader carries the session identifier in both directions.
const SessionHeader = "X-Session-ID"

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator endpoints on top of a SessionStore.
type Handler struct {
	sessions *SessionStore
}

// NewHandler returns a Handler backed by sessions.
func NewHandler(sessions *SessionStore) *Handler {
	return &Handler{sessions: sessions}
}

// sessionID returns the caller's session identifier in canonical UUID form,
// minting a fresh one when the header is missing or not a UUID. The
// identifier is always echoed in the response header.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id, err := uuid.Parse(r.Header.Get(SessionHeader))
	if err != nil {
		id = uuid.New()
	}
	sid := id.String()
	w.Header().Set(SessionHeader, sid)
	return sid
}

// ---------------------------------------------------------------------------
// Handlers: evaluation
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate; the operator comes from the body.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	h.handleEvaluate(w, r, "")
}

// Add handles POST /calculator/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.handleEvaluate(w, r, OpAdd)
}

// Subtract handles POST /calculator/subtract
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.handleEvaluate(w, r, OpSubtract)
}

// Multiply handles POST /calculator/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleEvaluate(w, r, OpMultiply)
}

// Divide handles POST /calculator/divide. A zero divisor is nudged by
// DivisionEpsilon rather than rejected.
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	h.handleEvaluate(w, r, OpDivide)
}

// Power handles POST /calculator/power
func (h *Handler) Power(w http.ResponseWriter, r *http.Request) {
	h.handleEvaluate(w, r, OpPower)
}

// Modulo handles POST /calculator/modulo
func (h *Handler) Modulo(w http.ResponseWriter, r *http.Request) {
	h.handleEvaluate(w, r, OpModulo)
}

// handleEvaluate is the shared implementation for all evaluation endpoints:
// child span, session evaluation, metrics, trace-correlated logging and the
// JSON response. An empty fixed operator means the token comes from the body.
func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request, fixed Operator) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	sid := sessionID(w, r)

	spanName := "calculator.evaluate"
	if fixed != "" {
		spanName = fmt.Sprintf("calculator.%s", fixed.Name())
	}

	// --- 1. Custom child span ---
	ctx, span := tracer.Start(ctx, spanName,
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("calculator.session", sid),
		),
	)
	defer span.End()

	// --- 2. Decode request body ---
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		opName := "evaluate"
		if fixed != "" {
			opName = fixed.Name()
		}
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	op := fixed
	if op == "" {
		op = Operator(req.Op)
	}
	opName := op.Name()
	span.SetAttributes(
		attribute.String("calculator.operation", opName),
		attribute.String("calculator.operator", string(op)),
	)

	// --- 3. Evaluate inside the caller's session (timed for histogram) ---
	var (
		out        Outcome
		err        error
		historyLen int
	)
	start := time.Now()
	h.sessions.Do(sid, func(s *Session) {
		out, err = s.Evaluate(string(req.A), string(req.B), op)
		historyLen = s.HistoryLen()
	})
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", opName))

	diags := out.Diagnostics()
	if len(diags) > 0 {
		parseFallbacks.Add(ctx, int64(len(diags)), attrs)
		for _, d := range diags {
			span.AddEvent("operand.coerced", trace.WithAttributes(attribute.String("diagnostic", d.Error())))
		}
	}

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusUnprocessableEntity, w)
		return
	}

	// Record operands as span attributes
	span.SetAttributes(
		attribute.Float64("calculator.operand.a", out.A.Value),
		attribute.Float64("calculator.operand.b", out.B.Value),
	)

	// --- 4. Record metrics ---
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, out.Result, attrs)
	historyRecords.Inc()
	if out.Fallback {
		unknownOperator.Add(ctx, 1)
	}

	// --- 5. Span event with the result ---
	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", out.Result),
		attribute.Float64("duration_ms", elapsed),
		attribute.String("record.id", out.Record.ID.String()),
	))
	span.SetAttributes(attribute.Float64("calculator.result", out.Result))
	span.SetStatus(codes.Ok, "")

	// --- 6. Structured log with trace correlation ---
	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", out.A.Value),
		zap.Float64("b", out.B.Value),
		zap.Float64("result", out.Result),
		zap.Bool("fallback", out.Fallback),
		zap.String("record_id", out.Record.ID.String()),
		zap.Int("history_len", historyLen),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	// --- 7. Write JSON response ---
	resp := EvaluateResponse{
		SessionID: sid,
		Operation: opName,
		Operator:  op,
		A:         out.A.Value,
		B:         out.B.Value,
		Result:    Number(out.Result),
		Fallback:  out.Fallback,
		Record:    out.Record,
	}
	for _, d := range diags {
		resp.Diagnostics = append(resp.Diagnostics, d.Error())
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// Handlers: history and session state
// ---------------------------------------------------------------------------

// History handles GET /calculator/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)

	records := []Record{}
	h.sessions.View(sid, func(s *Session) {
		records = s.History()
	})

	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{SessionID: sid, Records: records})
}

// ClearHistory handles DELETE /calculator/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	sid := sessionID(w, r)

	_, span := tracer.Start(ctx, "calculator.history.clear",
		trace.WithAttributes(attribute.String("calculator.session", sid)),
	)
	defer span.End()

	var cleared int
	h.sessions.View(sid, func(s *Session) {
		cleared = s.ClearHistory()
	})

	historyRecords.Sub(float64(cleared))
	historyClears.Inc()
	span.SetAttributes(attribute.Int("calculator.history.cleared", cleared))

	logger.Info("calculator history cleared",
		zap.String("session_id", sid),
		zap.Int("cleared", cleared),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, ClearResponse{SessionID: sid, Cleared: cleared})
}

// SessionState handles GET /calculator/session: last result, outstanding
// error and history length.
func (h *Handler) SessionState(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)

	resp := SessionResponse{SessionID: sid}
	h.sessions.View(sid, func(s *Session) {
		if v, ok := s.Result(); ok {
			n := Number(v)
			resp.Result = &n
		}
		resp.Error = s.Err()
		resp.HistoryLen = s.HistoryLen()
	})

	handlers.WriteJSON(w, http.StatusOK, resp)
}
