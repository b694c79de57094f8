package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	m.Run()
}

func TestClient_EmbedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "secret-key", r.URL.Query().Get("key"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Content.Parts, 1)
		require.Equal(t, "mountain bike", req.Content.Parts[0].Text)

		fmt.Fprint(w, `{"embedding":{"values":[0.1,0.2,0.3]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-key")
	vector, err := c.EmbedText(context.Background(), "mountain bike")
	require.NoError(t, err)
	require.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
}

func TestClient_NoAPIKeyOmitsQueryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("key"))
		fmt.Fprint(w, `{"embedding":{"values":[1]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.EmbedText(context.Background(), "anything")
	require.NoError(t, err)
}

func TestClient_UpstreamErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "k")
		_, err := c.EmbedText(context.Background(), "q")
		require.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not-json")
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "k")
		_, err := c.EmbedText(context.Background(), "q")
		require.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
	})

	t.Run("empty vector", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"embedding":{"values":[]}}`)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "k")
		_, err := c.EmbedText(context.Background(), "q")
		require.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", "k")
		_, err := c.EmbedText(context.Background(), "q")
		require.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)
	})
}
