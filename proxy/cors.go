package proxy

import (
	"net/http"
	"slices"
	"strings"

	"github.com/proxyforge/ferryman/headers"
)

const (
	originHeader                = "origin"
	accessControlRequestMethod  = "access-control-request-method"
	accessControlRequestHeaders = "access-control-request-headers"
	accessControlAllowOrigin    = "Access-Control-Allow-Origin"
	accessControlAllowHeaders   = "Access-Control-Allow-Headers"
	accessControlAllowMethods   = "Access-Control-Allow-Methods"
)

// handlePreflight negotiates a CORS preflight exchange. It runs only when
// CORS support is enabled and the request method is OPTIONS, and its outcome
// (approval or rejection) terminates the whole request: no further dispatch
// step, including the allow-origin post-processing, runs afterwards.
func (d *Dispatcher) handlePreflight(req Request, cfg Configuration) Response {
	hs := headers.FromMap(req.Headers)

	if !hs.Has(originHeader) {
		return missingPreflightHeader(originHeader)
	}
	if !hs.Has(accessControlRequestMethod) {
		return missingPreflightHeader(accessControlRequestMethod)
	}

	requestedMethod := hs.Get(accessControlRequestMethod)
	target := strings.ToLower(requestedMethod)
	if !d.registry.IsRegistered(target) {
		d.logger.Warn().Str("method", target).Msg("preflight for unregistered method")
		return textError(http.StatusBadRequest, "Lambda cannot handle the method %s", target)
	}

	required := lowercaseAll(d.registry.Resolve(cfg, target).RequiredHeaders())
	if len(required) > 0 && !hs.Has(accessControlRequestHeaders) {
		return textError(http.StatusBadRequest,
			"The required header(s) not present: %s", accessControlRequestHeaders)
	}

	// Proposed header tokens are not validated as header names, only
	// checked for containment of the required set.
	var proposed []string
	if hs.Has(accessControlRequestHeaders) {
		proposed = parseHeaderList(hs.Get(accessControlRequestHeaders))
	}

	var unsatisfied []string
	for _, name := range required {
		if !slices.Contains(proposed, name) {
			unsatisfied = append(unsatisfied, name)
		}
	}
	if len(unsatisfied) > 0 {
		return textError(http.StatusBadRequest,
			"The required header(s) not present: %s", strings.Join(unsatisfied, ", "))
	}

	d.logger.Info().Str("method", requestedMethod).Msg("preflight approved")
	return NewResponse().
		WithHeader(accessControlAllowOrigin, hs.Get(originHeader)).
		WithHeader(accessControlAllowHeaders, strings.Join(proposed, ", ")).
		WithHeader(accessControlAllowMethods, requestedMethod)
}

func missingPreflightHeader(name string) Response {
	return textError(http.StatusBadRequest,
		"Options method should include the %s header", name)
}

// parseHeaderList splits a comma-separated header name list, stripping all
// whitespace (not just edges) and lower-casing each token. Order is
// preserved.
func parseHeaderList(value string) []string {
	tokens := strings.Split(value, ",")
	list := make([]string, 0, len(tokens))
	for _, token := range tokens {
		list = append(list, strings.ToLower(stripWhitespace(token)))
	}
	return list
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return -1
		}
		return r
	}, s)
}

func lowercaseAll(names []string) []string {
	lowered := make([]string, 0, len(names))
	for _, name := range names {
		lowered = append(lowered, strings.ToLower(name))
	}
	return lowered
}
