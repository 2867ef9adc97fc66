package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Run("returns body on 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
			assert.NotEmpty(t, r.Header.Get("Accept"))
			w.Write([]byte("BEGIN:VEVENT"))
		}))
		defer server.Close()

		fetcher := NewFetcher(5*time.Second, "test-agent", false)
		body, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "BEGIN:VEVENT", body)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := NewFetcher(5*time.Second, "test-agent", false)
		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("unreachable host is an error", func(t *testing.T) {
		fetcher := NewFetcher(time.Second, "test-agent", false)
		_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1")
		require.Error(t, err)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := NewFetcher(5*time.Second, "test-agent", false)
		body, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "ok", body)
		assert.Equal(t, 2, calls)
	})
}
