package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_JoinsSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_a/single", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "auto", q.Get("sl"))
		assert.Equal(t, "en", q.Get("tl"))
		assert.Equal(t, "Me encanta programar. Sí", q.Get("q"))
		_, _ = w.Write([]byte(`[[["I love programming. ","Me encanta programar.",null,null,10],["Yes","Sí",null,null,10]],null,"es"]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})
	got, err := c.Translate(context.Background(), "Me encanta programar. Sí", "auto", "en")

	require.NoError(t, err)
	assert.Equal(t, "I love programming. Yes", got)
}

func TestTranslate_EmptyTextSkipsCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	got, err := c.Translate(context.Background(), "  ", "auto", "en")

	require.NoError(t, err)
	assert.Equal(t, "  ", got)
	assert.Zero(t, calls.Load())
}

func TestTranslate_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "garbage":
			_, _ = w.Write([]byte(`not json`))
		case "shape":
			_, _ = w.Write([]byte(`[null]`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	for _, q := range []string{"garbage", "shape", "status"} {
		_, err := c.Translate(context.Background(), q, "auto", "en")
		assert.Error(t, err, q)
	}
}
