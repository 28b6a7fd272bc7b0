package bidgen

import "net/http"

// Kind classifies a generation failure so callers can map it to user
// guidance without sniffing message substrings.
type Kind int

const (
	// KindConfig: a precondition on the AI settings failed (e.g. missing
	// API key). No external call was attempted.
	KindConfig Kind = iota + 1
	// KindValidation: the triggering input was missing or empty. No
	// external call was attempted.
	KindValidation
	// KindProvider: the external model call failed; Status carries the
	// provider's HTTP status when available.
	KindProvider
	// KindInternal: anything else.
	KindInternal
)

// Error is the uniform failure result produced at the orchestration
// boundary. Nothing is retried; each request fails independently.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to the status the API layer responds with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return http.StatusBadRequest
	case KindProvider:
		if e.Status > 0 {
			return e.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func configError(msg string) *Error {
	return &Error{Kind: KindConfig, Message: msg}
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}
