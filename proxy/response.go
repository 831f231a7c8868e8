package proxy

import (
	"maps"
	"net/http"
)

// Response is the outbound response handed back to the invocation host.
// Responses are immutable values: every With method returns a derived copy
// and never mutates the receiver, so the dispatcher can post-process
// whatever a handler produced without shared state.
type Response struct {
	statusCode int
	headers    map[string]string
	body       string
}

// NewResponse creates a response with status 200, no headers and an empty
// body.
func NewResponse() Response {
	return Response{statusCode: http.StatusOK}
}

// WithStatusCode derives a copy with the status code replaced.
func (r Response) WithStatusCode(code int) Response {
	r.statusCode = code
	return r
}

// WithHeader derives a copy with one header replaced or added. The header
// map of the original is copied, not shared.
func (r Response) WithHeader(key, value string) Response {
	hs := make(map[string]string, len(r.headers)+1)
	maps.Copy(hs, r.headers)
	hs[key] = value
	r.headers = hs
	return r
}

// WithHeaders derives a copy with all given headers replaced or added.
func (r Response) WithHeaders(headers map[string]string) Response {
	hs := make(map[string]string, len(r.headers)+len(headers))
	maps.Copy(hs, r.headers)
	maps.Copy(hs, headers)
	r.headers = hs
	return r
}

// WithBody derives a copy with the body replaced.
func (r Response) WithBody(body string) Response {
	r.body = body
	return r
}

// StatusCode returns the HTTP status code.
func (r Response) StatusCode() int {
	return r.statusCode
}

// Header returns the value of a header by its exact key.
func (r Response) Header(key string) string {
	return r.headers[key]
}

// Headers returns a copy of the header map.
func (r Response) Headers() map[string]string {
	hs := make(map[string]string, len(r.headers))
	maps.Copy(hs, r.headers)
	return hs
}

// Body returns the response body.
func (r Response) Body() string {
	return r.body
}
