package utils

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromHTTPURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"http default port", "http://example.com/results", "example.com:80"},
		{"https default port", "https://example.com/results/", "example.com:443"},
		{"explicit port", "http://localhost:8080/results", "localhost:8080"},
		{"no path", "https://example.com:8443", "example.com:8443"},
		{"not http", "./results", ""},
		{"no host", "http:///results", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFromHTTPURL(tt.url))
		})
	}
}

func TestWaitForTCP(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	addr := l.Addr().String()

	assert.NoError(t, WaitForTCP(context.Background(), addr, time.Second))

	l.Close()
	assert.Error(t, WaitForTCP(context.Background(), addr, 300*time.Millisecond))
}

func TestWaitForHTTPResponse(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	assert.NoError(t, WaitForHTTPResponse(context.Background(), srv.URL, time.Second),
		"any response counts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, WaitForHTTPResponse(ctx, "http://127.0.0.1:1", time.Second))
}
