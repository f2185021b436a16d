package server

// BalanceRequest is the body of POST /v1/balance.
type BalanceRequest struct {
	Expression string `json:"expression" binding:"required,max=4096"`

	// AutoCorrect and SymbolHeader override the server defaults when set.
	AutoCorrect  *bool  `json:"auto_correct,omitempty"`
	SymbolHeader string `json:"symbol_header,omitempty" binding:"omitempty,max=16"`
}

// BalanceResponse is returned for a balanced expression.
type BalanceResponse struct {
	Expression string `json:"expression"`
	Balanced   string `json:"balanced"`
	Direction  string `json:"direction"`
	Cached     bool   `json:"cached"`
	RunID      string `json:"run_id,omitempty"`
	Seq        int64  `json:"seq,omitempty"`
}

// CheckRequest is the body of POST /v1/check.
type CheckRequest struct {
	Expression string `json:"expression" binding:"required,max=4096"`
}

// CheckResponse reports whether an expression is balanced as written.
type CheckResponse struct {
	Expression string `json:"expression"`
	Balanced   bool   `json:"balanced"`
}

// ErrorResponse is the body of every 4xx and 5xx reply.
type ErrorResponse struct {
	Error    string            `json:"error"`
	Code     string            `json:"code"`
	Position *int              `json:"position,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// HistoryEntry is one row of GET /v1/runs/:id.
type HistoryEntry struct {
	Seq        int64  `json:"seq"`
	Expression string `json:"expression"`
	Balanced   string `json:"balanced,omitempty"`
	Direction  string `json:"direction,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`
}

// Error codes for failures that do not come from the parser or balancer.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidOptions = "INVALID_OPTIONS"
	CodeInternal       = "INTERNAL"
	CodeNotFound       = "NOT_FOUND"
	CodeUnavailable    = "UNAVAILABLE"
)
