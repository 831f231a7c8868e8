package headers

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap(t *testing.T) {
	// Test: keys are folded to lower case, values untouched
	h := FromMap(map[string]string{
		"Content-Type": "application/json",
		"ACCEPT":       "text/html",
	})
	require.NotNil(t, h)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "application/json", h.Get("content-type"))
	assert.Equal(t, "text/html", h.Get("accept"))

	// Test: lookup is case-insensitive regardless of the case used
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, "application/json", h.Get("CONTENT-TYPE"))
	assert.True(t, h.Has("Accept"))
	assert.False(t, h.Has("origin"))

	// Test: missing header
	assert.Equal(t, "", h.Get("missing"))

	// Test: the input map is left alone
	raw := map[string]string{"X-Foo": "bar"}
	FromMap(raw)
	assert.Equal(t, map[string]string{"X-Foo": "bar"}, raw)
}

func TestFromMapCollision(t *testing.T) {
	// Keys colliding after the fold resolve deterministically: sorted
	// order, later key wins. "content-type" sorts after "Content-Type".
	h := FromMap(map[string]string{
		"Content-Type": "text/plain",
		"content-type": "application/json",
	})
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "application/json", h.Get("content-type"))
}

func TestSetRemove(t *testing.T) {
	h := NewHeaders()
	h.Set("X-Request-Id", "abc")
	assert.Equal(t, "abc", h.Get("x-request-id"))

	h.Set("x-request-id", "def")
	assert.Equal(t, "def", h.Get("X-Request-Id"))
	assert.Equal(t, 1, h.Len())

	h.Remove("X-REQUEST-ID")
	assert.False(t, h.Has("x-request-id"))
	assert.Equal(t, 0, h.Len())
}

func TestAll(t *testing.T) {
	h := FromMap(map[string]string{
		"Origin": "http://example.com",
		"Accept": "*/*",
	})
	collected := maps.Collect(h.All())
	assert.Equal(t, map[string]string{
		"origin": "http://example.com",
		"accept": "*/*",
	}, collected)
}
