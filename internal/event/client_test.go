package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cderrors "github.com/mrz1836/countdown/internal/errors"
)

const sampleEvent = `{
  "id": "1",
  "title": "winter giveaway",
  "endDate": "2025-12-31",
  "description": "Enter before the **deadline**.",
  "rewards": [
    {"id": 1, "name": "Laptop", "image": "laptop.png", "count": 1, "detail": "14 inch", "backDescription": "Top prize", "rank": 1},
    {"id": 2, "name": "Mug", "image": "mug.png", "count": 50, "detail": "Ceramic", "backDescription": "Runner up", "rank": 2}
  ]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestGetEvent_Object(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/event", r.URL.Path)
		_, _ = io.WriteString(w, sampleEvent)
	})

	ev, err := c.GetEvent(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1", ev.ID)
	assert.Equal(t, "winter giveaway", ev.Title)
	assert.Equal(t, "2025-12-31", ev.EndDate)
	require.Len(t, ev.Rewards, 2)
	assert.Equal(t, Reward{
		ID: 1, Name: "Laptop", Image: "laptop.png", Count: 1,
		Detail: "14 inch", BackDescription: "Top prize", Rank: 1,
	}, ev.Rewards[0])
}

func TestGetEvent_ArrayUsesFirst(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[`+sampleEvent+`, {"id": "2", "title": "other"}]`)
	})

	ev, err := c.GetEvent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", ev.ID)
}

func TestGetEvent_NotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty array", body: `[]`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetEvent(context.Background())
			require.ErrorIs(t, err, cderrors.ErrEventNotFound)
		})
	}
}

func TestGetEvent_Failures(t *testing.T) {
	t.Parallel()

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := c.GetEvent(context.Background())
		require.ErrorIs(t, err, cderrors.ErrEventFetch)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
		assert.Equal(t, "boom", statusErr.Body)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"id":`)
		})

		_, err := c.GetEvent(context.Background())
		require.ErrorIs(t, err, cderrors.ErrEventFetch)
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient(url).GetEvent(context.Background())
		require.ErrorIs(t, err, cderrors.ErrEventFetch)
	})
}

func TestGetEvent_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		_, _ = io.WriteString(w, sampleEvent)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.GetEvent(context.Background())
	require.ErrorIs(t, err, cderrors.ErrEventFetch)
}

func TestSubmitEntry(t *testing.T) {
	t.Parallel()

	entry := Entry{Name: "Kim", Phone: "010-1234-5678", Email: "kim@example.com", AgreedTerms: true}

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/entries", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))

		var got Entry
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, entry, got)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(got)
	})
	WithRequestIDFunc(func() string { return "req-1" })(c)

	stored, err := c.SubmitEntry(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, entry, *stored)
}

func TestSubmitEntry_EmptyResponseEchoesEntry(t *testing.T) {
	t.Parallel()

	entry := Entry{Name: "Lee", Phone: "1", Email: "lee@example.com", AgreedTerms: true}
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	stored, err := c.SubmitEntry(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, entry, *stored)
}

func TestSubmitEntry_Rejected(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "duplicate entry", http.StatusConflict)
	})

	_, err := c.SubmitEntry(context.Background(), Entry{Name: "a", Phone: "b", Email: "c", AgreedTerms: true})
	require.ErrorIs(t, err, cderrors.ErrEntrySubmit)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusConflict, statusErr.Code)
}

func TestRequestIDIsUnique(t *testing.T) {
	t.Parallel()

	ids := make(chan string, 2)
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get("X-Request-ID")
		_, _ = io.WriteString(w, sampleEvent)
	})

	for range 2 {
		_, err := c.GetEvent(context.Background())
		require.NoError(t, err)
	}

	first, second := <-ids, <-ids
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

func TestNewClient_TrimsBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://api.test", NewClient("http://api.test///").BaseURL())
}
