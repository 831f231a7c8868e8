package mediatype

import (
	"maps"
	"regexp"
	"strings"
)

// https://datatracker.ietf.org/doc/html/rfc9110#name-tokens
var tokenRegex = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*\+\-.^_\x60\|~]+$`)

// MediaType is a parsed media type descriptor, e.g. application/json or
// text/html;charset=utf-8.
type MediaType struct {
	Type    string
	Subtype string
	Params  map[string]string
}

func isToken(s string) bool {
	return tokenRegex.MatchString(s)
}

func isTypeToken(s string) bool {
	return s == "*" || isToken(s)
}

// Parse parses a single media type token of the form
// type "/" subtype *( ";" key "=" value ). The input is expected to carry no
// whitespace; ParseList strips it before calling Parse.
func Parse(token string) (MediaType, error) {
	parts := strings.Split(token, ";")

	typeSubtype := strings.Split(parts[0], "/")
	if len(typeSubtype) != 2 {
		return MediaType{}, &ParseError{Token: token, Reason: "expected type/subtype"}
	}
	mtype, subtype := typeSubtype[0], typeSubtype[1]
	if !isTypeToken(mtype) || !isTypeToken(subtype) {
		return MediaType{}, &ParseError{Token: token, Reason: "invalid type or subtype"}
	}

	var params map[string]string
	if len(parts) > 1 {
		params = make(map[string]string, len(parts)-1)
		for _, param := range parts[1:] {
			key, value, found := strings.Cut(param, "=")
			if !found {
				return MediaType{}, &ParseError{Token: token, Reason: "parameter without value"}
			}
			value = strings.Trim(value, `"`)
			if !isToken(key) || value == "" {
				return MediaType{}, &ParseError{Token: token, Reason: "invalid parameter"}
			}
			params[key] = value
		}
	}

	return MediaType{Type: mtype, Subtype: subtype, Params: params}, nil
}

// ParseList parses a comma-separated list of media types, such as the value
// of a Content-Type or Accept header. All whitespace within each token is
// stripped before parsing. Order is preserved from the input. The whole call
// fails on the first malformed token; no partial list is returned.
func ParseList(value string) ([]MediaType, error) {
	tokens := strings.Split(value, ",")
	types := make([]MediaType, 0, len(tokens))
	for _, token := range tokens {
		stripped := stripWhitespace(token)
		mt, err := Parse(stripped)
		if err != nil {
			return nil, err
		}
		types = append(types, mt)
	}
	return types, nil
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

// String renders the media type back into header form.
func (m MediaType) String() string {
	var sb strings.Builder
	sb.WriteString(m.Type)
	sb.WriteByte('/')
	sb.WriteString(m.Subtype)
	for _, key := range sortedKeys(m.Params) {
		sb.WriteByte(';')
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(m.Params[key])
	}
	return sb.String()
}

// Equal reports whether two media types have the same type, subtype and
// parameters.
func (m MediaType) Equal(other MediaType) bool {
	return m.Type == other.Type &&
		m.Subtype == other.Subtype &&
		maps.Equal(m.Params, other.Params)
}
