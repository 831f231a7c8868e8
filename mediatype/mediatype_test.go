package mediatype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	// Test: plain type/subtype
	mt, err := Parse("application/json")
	require.NoError(t, err)
	assert.Equal(t, "application", mt.Type)
	assert.Equal(t, "json", mt.Subtype)
	assert.Empty(t, mt.Params)

	// Test: parameters
	mt, err = Parse("text/html;charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "text", mt.Type)
	assert.Equal(t, "html", mt.Subtype)
	assert.Equal(t, map[string]string{"charset": "utf-8"}, mt.Params)

	// Test: quoted parameter value
	mt, err = Parse(`application/json;profile="simple"`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"profile": "simple"}, mt.Params)

	// Test: wildcards
	mt, err = Parse("*/*")
	require.NoError(t, err)
	assert.Equal(t, "*", mt.Type)
	assert.Equal(t, "*", mt.Subtype)
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		"application",
		"application/json/extra",
		"bad/type/broken",
		"/json",
		"application/",
		"text/html;charset",
		"text/html;=utf-8",
		"text/html;charset=",
		"applica tion/json",
	}
	for _, input := range cases {
		_, err := Parse(input)
		require.Error(t, err, "input %q", input)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, input, perr.Token)
	}
}

func TestParseList(t *testing.T) {
	// Test: order preserved, whitespace stripped
	types, err := ParseList("text/html , application/json;charset=utf-8")
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.True(t, types[0].Equal(MediaType{Type: "text", Subtype: "html"}))
	assert.True(t, types[1].Equal(MediaType{
		Type:    "application",
		Subtype: "json",
		Params:  map[string]string{"charset": "utf-8"},
	}))

	// Test: internal whitespace is stripped, not just edges
	types, err = ParseList("text / html")
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "text", types[0].Type)
	assert.Equal(t, "html", types[0].Subtype)

	// Test: one bad token fails the whole list
	types, err = ParseList("text/html, bad/type/broken, application/json")
	require.Error(t, err)
	assert.Nil(t, types)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad/type/broken", perr.Token)
}

func TestParseListIdempotent(t *testing.T) {
	const input = "text/html;charset=utf-8, application/json, */*"
	first, err := ParseList(input)
	require.NoError(t, err)
	second, err := ParseList(input)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]))
	}
}

func TestString(t *testing.T) {
	mt := MediaType{
		Type:    "text",
		Subtype: "html",
		Params:  map[string]string{"charset": "utf-8"},
	}
	assert.Equal(t, "text/html;charset=utf-8", mt.String())
	assert.Equal(t, "application/json", MediaType{Type: "application", Subtype: "json"}.String())
}
