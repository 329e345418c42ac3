package testutil

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventServer_ServesRawJSON(t *testing.T) {
	srv := NewEventServer(t, `[{"id":"1","endDate":"2025-12-31"}]`)

	resp, err := http.Get(srv.URL + "/event")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","endDate":"2025-12-31"}]`, string(body))
	assert.Equal(t, 1, srv.EventHits())
}

func TestEventServer_RecordsEntries(t *testing.T) {
	srv := NewEventServer(t, map[string]string{"id": "1"})

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/entries", strings.NewReader(`{"name":"Kim"}`))
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, srv.Entries(), 1)
	assert.JSONEq(t, `{"name":"Kim"}`, string(srv.Entries()[0]))
	assert.Equal(t, []string{"abc"}, srv.RequestIDs())
}

func TestEventServer_Failures(t *testing.T) {
	srv := NewEventServer(t, `{}`)
	srv.FailEvent(http.StatusBadGateway)
	srv.FailEntries(http.StatusConflict)

	resp, err := http.Get(srv.URL + "/event")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/entries", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Empty(t, srv.Entries())
}
