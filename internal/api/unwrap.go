// internal/api/unwrap.go

package api

import (
	"github.com/goccy/go-json"

	"gira-client/internal/models"
)

// errorBody covers the error shapes seen in the wild: the envelope
// message field and the bare {"error": "..."} object.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Unwrap decodes one response body into out, absorbing both contract
// shapes the backend uses: a {success, data, message} envelope or the
// raw payload itself. Every operation goes through here; none may
// reimplement the detection.
func Unwrap(body []byte, status int, fallback string, out interface{}) error {
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err == nil && env.IsEnvelope() {
		if !*env.Success {
			return serverError(status, env.Message, fallback)
		}
		if status >= 400 {
			return serverError(status, env.Message, fallback)
		}
		if out == nil || len(env.Data) == 0 {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return networkError(err)
		}
		return nil
	}

	if status >= 400 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		return serverError(status, msg, fallback)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return networkError(err)
	}
	return nil
}
