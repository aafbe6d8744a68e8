package types

// SuccessEnvelope wraps every 2xx body as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Details carries per-field validation
// messages keyed by JSON field name. RequestID echoes X-Request-Id so a user
// report can be matched to the server log line.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorEnvelope wraps every non-2xx body as {"error": ...}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
