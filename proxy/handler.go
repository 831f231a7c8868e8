package proxy

import "github.com/proxyforge/ferryman/mediatype"

// Configuration is the opaque, deployment-specific value handed to handler
// factories. It is produced fresh for every invocation by a
// ConfigurationFactory and never cached by the core.
type Configuration any

// ConfigurationFactory builds the Configuration for one invocation.
// Construction may fail; the Dispatcher maps any failure to a fixed 500
// response.
type ConfigurationFactory func(req Request, ctx *InvocationContext) (Configuration, error)

// Handler is the business-logic unit registered for a single HTTP method.
type Handler interface {
	// Handle processes the request. contentTypes and acceptTypes are the
	// parsed Content-Type and Accept header values in request order;
	// ranking them by preference is the handler's business. A returned
	// error becomes a 500 JSON envelope; a returned Response is passed
	// through as-is.
	Handle(req Request, contentTypes, acceptTypes []mediatype.MediaType, ctx *InvocationContext) (Response, error)

	// RequiredHeaders returns the header names, case-insensitive, that a
	// caller must send for this method to succeed. Consulted only during
	// CORS preflight negotiation, never enforced on the actual request.
	RequiredHeaders() []string
}

// HandlerFactory constructs a Handler from the per-invocation
// Configuration.
type HandlerFactory func(cfg Configuration) Handler
