package core

// Error codes for domain errors. Commands against missing rooms or from
// unbound sessions are silent no-ops, so only the join path needs codes.
const (
	ErrCodeAlreadyJoined = "already_joined"
	ErrCodeBadRequest    = "bad_request"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
