package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"8080":           ":8080",
		":8080":          ":8080",
		"127.0.0.1:9000": "127.0.0.1:9000",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeAddr(in), "input %q", in)
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	o := Options{WriteTimeout: 5 * time.Second}.withDefaults()

	assert.Equal(t, 5*time.Second, o.WriteTimeout)
	assert.Equal(t, defaultReadHeaderTimeout, o.ReadHeaderTimeout)
	assert.Equal(t, defaultIdleTimeout, o.IdleTimeout)
	assert.Equal(t, defaultMaxHeaderBytes, o.MaxHeaderBytes)
}

func TestNewHTTPServer_AppliesOptions(t *testing.T) {
	s := New(Options{IdleTimeout: 3 * time.Second})
	h := http.NewServeMux()

	hs := s.newHTTPServer(":0", h)

	assert.Equal(t, ":0", hs.Addr)
	assert.Equal(t, 3*time.Second, hs.IdleTimeout)
	assert.Equal(t, defaultWriteTimeout, hs.WriteTimeout)
}

func TestShutdown_BeforeRunIsNoop(t *testing.T) {
	assert.NoError(t, New(Options{}).Shutdown(context.Background()))
}
