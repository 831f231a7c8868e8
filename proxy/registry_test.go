package proxy

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCaseInsensitive(t *testing.T) {
	registry := NewRegistry()
	registry.Register("PoSt", staticFactory(okHandler("post")))

	assert.True(t, registry.IsRegistered("POST"))
	assert.True(t, registry.IsRegistered("post"))
	assert.True(t, registry.IsRegistered("Post"))
	assert.False(t, registry.IsRegistered("GET"))
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	registry := NewRegistry()
	registry.Register("GET", staticFactory(okHandler("first")))
	registry.Register("get", staticFactory(okHandler("second")))

	handler := registry.Resolve(nil, "GET")
	resp, err := handler.Handle(Request{}, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Body())
}

func TestRegistryResolvePassesConfiguration(t *testing.T) {
	registry := NewRegistry()
	var got Configuration
	registry.Register("GET", func(cfg Configuration) Handler {
		got = cfg
		return okHandler("ok")
	})

	registry.Resolve("my-config", "GET")
	assert.Equal(t, "my-config", got)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register(fmt.Sprintf("method-%d", i), staticFactory(okHandler("ok")))
		}()
		go func() {
			defer wg.Done()
			registry.IsRegistered(fmt.Sprintf("method-%d", i))
		}()
	}
	wg.Wait()

	for i := range 16 {
		assert.True(t, registry.IsRegistered(fmt.Sprintf("method-%d", i)))
	}
}
