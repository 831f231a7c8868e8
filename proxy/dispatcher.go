// Package proxy implements a request-dispatch shim for HTTP-shaped requests
// delivered by an external invocation host. One inbound request is resolved
// to a registered business handler after validation of protocol
// preconditions (content negotiation headers, registered method, CORS
// preflight rules), and the outbound response is normalized with a uniform
// CORS origin header and uniform error envelopes.
package proxy

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"

	"github.com/proxyforge/ferryman/headers"
	"github.com/proxyforge/ferryman/mediatype"
)

const (
	contentTypeHeader = "content-type"
	acceptHeader      = "accept"

	misconfiguredMessage = "This service is mis-configured. Please contact your system administrator.\n"
)

// Dispatcher is the top-level entry point: it turns a raw request into
// either a delegated business response or a precisely-coded protocol error.
type Dispatcher struct {
	registry      *Registry
	configFactory ConfigurationFactory
	corsEnabled   bool
	logger        zerolog.Logger
}

// DispatcherOpts configures a Dispatcher.
type DispatcherOpts struct {
	// Registry holds the method handler registrations. Required. All
	// registrations must complete before the first dispatch.
	Registry *Registry

	// ConfigFactory builds the per-invocation Configuration. Required.
	ConfigFactory ConfigurationFactory

	// EnableCors turns on OPTIONS preflight negotiation.
	EnableCors bool

	// Logger overrides the default timestamped stderr logger.
	Logger *zerolog.Logger
}

// NewDispatcher creates a Dispatcher from the given options.
func NewDispatcher(opts DispatcherOpts) *Dispatcher {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Dispatcher{
		registry:      opts.Registry,
		configFactory: opts.ConfigFactory,
		corsEnabled:   opts.EnableCors,
		logger:        logger,
	}
}

// Dispatch processes one invocation. It is a total function from request to
// response: every failure is converted into a terminal Response before it
// can reach the invocation host.
func (d *Dispatcher) Dispatch(req Request, ctx *InvocationContext) Response {
	method := strings.ToLower(req.HTTPMethod)

	resp := d.run(req, ctx, method)

	// The allow-origin override applies to everything except preflight
	// outcomes, error envelopes included, whether or not CORS support is
	// enabled.
	if method != "options" {
		resp = resp.WithHeader(accessControlAllowOrigin, "*")
	}

	d.logger.Info().
		Int("status", resp.StatusCode()).
		Int("body_size", len(resp.Body())).
		Msg("completed response")
	return resp
}

// run guards the pipeline against panics so that Dispatch stays total.
func (d *Dispatcher) run(req Request, ctx *InvocationContext, method string) (resp Response) {
	defer func() {
		if cause := recover(); cause != nil {
			resp = d.recovered(req, cause)
		}
	}()
	return d.dispatch(req, ctx, method)
}

// dispatch is the pipeline proper. Each validation stage either lets the
// request continue or produces the terminal Response returned here.
func (d *Dispatcher) dispatch(req Request, ctx *InvocationContext, method string) Response {
	cfg, err := d.configFactory(req, ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("configuration acquisition failed")
		return serverError(misconfiguredMessage, err, debug.Stack())
	}

	d.logger.Info().Str("method", method).Msg("dispatching request")

	if d.corsEnabled && method == "options" {
		return d.handlePreflight(req, cfg)
	}

	if !d.registry.IsRegistered(method) {
		return textError(http.StatusBadRequest, "Lambda cannot handle the method %s", method)
	}
	handler := d.registry.Resolve(cfg, method)

	hs := headers.FromMap(req.Headers)
	if !hs.Has(contentTypeHeader) {
		return textError(http.StatusUnsupportedMediaType, "No %s header", contentTypeHeader)
	}
	if !hs.Has(acceptHeader) {
		return textError(http.StatusUnsupportedMediaType, "No %s header", acceptHeader)
	}

	// Case folding applies to the whole header value, not just keys.
	contentTypes, err := mediatype.ParseList(strings.ToLower(hs.Get(contentTypeHeader)))
	if err != nil {
		return textError(http.StatusBadRequest, "Malformed media type. %s", err)
	}
	acceptTypes, err := mediatype.ParseList(strings.ToLower(hs.Get(acceptHeader)))
	if err != nil {
		return textError(http.StatusBadRequest, "Malformed media type. %s", err)
	}

	d.logger.Debug().
		Str("content_type", hs.Get(contentTypeHeader)).
		Str("accept", hs.Get(acceptHeader)).
		Msg("negotiation headers parsed")

	resp, err := handler.Handle(req, contentTypes, acceptTypes, ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("handler failed")
		return serverError("", err, debug.Stack())
	}
	return resp
}

// recovered maps a panic to one of the two uncaught-failure tiers: runtime
// errors are treated as structural failures of the request itself and leak
// no internals, everything else becomes the JSON envelope.
func (d *Dispatcher) recovered(req Request, cause any) Response {
	if _, ok := cause.(runtime.Error); ok {
		d.logger.Error().Any("panic", cause).Msg("structural failure")
		return textError(http.StatusInternalServerError, "Failed to parse: %+v", req)
	}

	d.logger.Error().Any("panic", cause).Msg("recovered from panic")
	err, ok := cause.(error)
	if !ok {
		err = fmt.Errorf("%v", cause)
	}
	return serverError("", err, debug.Stack())
}
