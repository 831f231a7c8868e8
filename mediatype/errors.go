package mediatype

import (
	"fmt"
	"maps"
	"slices"
)

// ParseError is returned when a media type token cannot be parsed. It carries
// the offending token so callers can surface it in error messages.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %q: %s", e.Token, e.Reason)
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
