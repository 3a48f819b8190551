package api

// NetworkErrorMessage is the fixed text surfaced when the transport
// itself failed, as opposed to a server-rejected request.
const NetworkErrorMessage = "Network error occurred"

// Error is the failure of one API operation. Exactly two classes
// exist: server-rejected (Message carries the backend text) and
// network failure (Network true, Message fixed).
type Error struct {
	StatusCode int
	Message    string
	Network    bool
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func networkError(err error) *Error {
	return &Error{Message: NetworkErrorMessage, Network: true, cause: err}
}

func serverError(status int, message, fallback string) *Error {
	if message == "" {
		message = fallback
	}
	return &Error{StatusCode: status, Message: message}
}

// ErrorMessage reduces any operation failure to the single string the
// stores keep in their error field.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := err.(*Error); ok {
		return apiErr.Message
	}
	return err.Error()
}
