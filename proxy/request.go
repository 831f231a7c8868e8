package proxy

import "time"

// Request is the inbound HTTP-shaped request delivered by the invocation
// host. The dispatch core reads only HTTPMethod and Headers; the remaining
// fields are carried through untouched for handlers.
type Request struct {
	HTTPMethod            string
	Path                  string
	QueryStringParameters map[string]string
	Headers               map[string]string
	Body                  string
}

// InvocationContext carries host-provided metadata about a single
// invocation. The core never examines it; it is passed through to the
// configuration factory and to handlers.
type InvocationContext struct {
	RequestID       string
	FunctionName    string
	FunctionVersion string
	Deadline        time.Time
	Attributes      map[string]string
}
