package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// errorBody is the JSON envelope for unexpected server-side failures. The
// stack trace is surfaced in cause for operators.
type errorBody struct {
	Message string `json:"message"`
	Cause   string `json:"cause"`
}

func textError(status int, format string, args ...any) Response {
	return NewResponse().
		WithStatusCode(status).
		WithBody(fmt.Sprintf(format, args...))
}

// serverError builds the 500 JSON envelope. An optional base message is
// prepended to the failure's own message.
func serverError(baseMessage string, err error, stack []byte) Response {
	message := err.Error()
	if baseMessage != "" {
		message = baseMessage + "\n" + err.Error()
	}
	body, merr := json.Marshal(errorBody{Message: message, Cause: string(stack)})
	if merr != nil {
		// unreachable with string fields, but never return a broken envelope
		body = []byte(`{"message":"internal server error"}`)
	}
	return NewResponse().
		WithStatusCode(http.StatusInternalServerError).
		WithBody(string(body))
}
