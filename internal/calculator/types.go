package calculator

import "encoding/json"

// RawInput is an operand exactly as the client sent it. JSON strings are
// unquoted; numbers and any other JSON value are kept verbatim and left to
// the lenient parser. null becomes "".
type RawInput string

func (r *RawInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RawInput(s)
		return nil
	}
	*r = RawInput(data)
	return nil
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate. The named
// operation endpoints (add, subtract, ...) ignore Op.
type EvaluateRequest struct {
	A  RawInput `json:"a"`
	B  RawInput `json:"b"`
	Op string   `json:"op"`
}

// EvaluateResponse is the JSON response for a successful evaluation.
type EvaluateResponse struct {
	SessionID   string   `json:"session_id"`
	Operation   string   `json:"operation"`
	Operator    Operator `json:"operator"`
	A           float64  `json:"a"`
	B           float64  `json:"b"`
	Result      Number   `json:"result"`
	Fallback    bool     `json:"fallback,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
	Record      Record   `json:"record"`
}

// HistoryResponse is the JSON response for GET /calculator/history.
type HistoryResponse struct {
	SessionID string   `json:"session_id"`
	Records   []Record `json:"records"`
}

// ClearResponse is the JSON response for DELETE /calculator/history.
type ClearResponse struct {
	SessionID string `json:"session_id"`
	Cleared   int    `json:"cleared"`
}

// SessionResponse is the JSON response for GET /calculator/session.
// Result is null until the first successful evaluation.
type SessionResponse struct {
	SessionID  string  `json:"session_id"`
	Result     *Number `json:"result"`
	Error      string  `json:"error,omitempty"`
	HistoryLen int     `json:"history_len"`
}
