package headers

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Headers is a collection of HTTP headers with case-insensitive keys.
// Every key is stored lower-cased; values are kept exactly as received.
type Headers struct {
	headers map[string]string
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// NewHeaders creates an empty Headers object.
func NewHeaders() *Headers {
	return &Headers{
		headers: map[string]string{},
	}
}

// FromMap folds a raw header mapping into a Headers object, lower-casing
// every key. When two keys collide after folding, the fold is deterministic:
// keys are visited in sorted order and the later one wins. The input map is
// not modified.
func FromMap(raw map[string]string) *Headers {
	h := NewHeaders()
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		h.headers[normalizeKey(key)] = raw[key]
	}
	return h
}

// Set stores a header value, replacing any existing value.
func (h *Headers) Set(key, value string) {
	h.headers[normalizeKey(key)] = value
}

// Get returns the value of a header, looked up case-insensitively.
func (h *Headers) Get(key string) string {
	return h.headers[normalizeKey(key)]
}

// Has reports whether a header is present, regardless of case.
func (h *Headers) Has(key string) bool {
	_, ok := h.headers[normalizeKey(key)]
	return ok
}

// Remove removes a header.
func (h *Headers) Remove(key string) {
	delete(h.headers, normalizeKey(key))
}

// All returns an iterator over all headers.
func (h *Headers) All() iter.Seq2[string, string] {
	return maps.All(h.headers)
}

// Len returns the number of headers.
func (h *Headers) Len() int {
	return len(h.headers)
}
