package controller

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stateinmemory "github.com/watchsync/server/internal/repository/state/inmemory"
	subinmemory "github.com/watchsync/server/internal/repository/subscriber/inmemory"
	syncservice "github.com/watchsync/server/internal/service/sync"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.Default()
	syncService := syncservice.NewService(stateinmemory.NewRepo(logger), subinmemory.NewRepo(logger), clockwork.NewRealClock(), logger)
	server := httptest.NewServer(NewController(syncService, logger).GetMux())
	t.Cleanup(server.Close)

	return server
}

func postAction(t *testing.T, server *httptest.Server, roomId, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(server.URL+"/api/v1/sync/"+roomId, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestActionAndResync(t *testing.T) {
	server := newTestServer(t)

	resp := postAction(t, server, "room1", `{"action":"play","time":10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var actionResp actionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&actionResp))
	assert.True(t, actionResp.Success)
	assert.Equal(t, 0, actionResp.SentTo)
	assert.Equal(t, 10.0, actionResp.CurrentTime)

	resyncResp, err := http.Get(server.URL + "/api/v1/sync/resync/room1")
	require.NoError(t, err)
	defer resyncResp.Body.Close()
	require.Equal(t, http.StatusOK, resyncResp.StatusCode)

	var syncState syncservice.SyncState
	require.NoError(t, json.NewDecoder(resyncResp.Body).Decode(&syncState))
	assert.True(t, syncState.IsPlaying)
	assert.InDelta(t, 10.0, syncState.CurrentTime, 0.1)
}

func TestActionMissingActionField(t *testing.T) {
	server := newTestServer(t)

	resp := postAction(t, server, "room1", `{"time":10}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// nothing was mutated
	resyncResp, err := http.Get(server.URL + "/api/v1/sync/resync/room1")
	require.NoError(t, err)
	defer resyncResp.Body.Close()

	var syncState syncservice.SyncState
	require.NoError(t, json.NewDecoder(resyncResp.Body).Decode(&syncState))
	assert.False(t, syncState.IsPlaying)
	assert.Equal(t, 0.0, syncState.CurrentTime)
}

func TestActionMalformedBody(t *testing.T) {
	server := newTestServer(t)

	resp := postAction(t, server, "room1", `{"action":`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func readSSEEvent(t *testing.T, reader *bufio.Reader) string {
	t.Helper()

	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}
}

func TestSSEClientReceivesSnapshotAndBroadcast(t *testing.T) {
	server := newTestServer(t)

	postAction(t, server, "room1", `{"action":"pause","time":30}`)

	streamResp, err := http.Get(server.URL + "/api/v1/sync/client/room1")
	require.NoError(t, err)
	defer streamResp.Body.Close()
	require.Equal(t, http.StatusOK, streamResp.StatusCode)
	assert.Equal(t, "text/event-stream", streamResp.Header.Get("Content-Type"))

	reader := bufio.NewReader(streamResp.Body)
	assert.JSONEq(t, `{"action":"pause","time":30}`, readSSEEvent(t, reader))

	resp := postAction(t, server, "room1", `{"action":"play","time":31}`)
	var actionResp actionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&actionResp))
	assert.Equal(t, 1, actionResp.SentTo)

	assert.JSONEq(t, `{"action":"play","time":31}`, readSSEEvent(t, reader))
}

func TestWSClientReceivesSnapshotAndBroadcast(t *testing.T) {
	server := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/sync/ws/room1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"pause","time":0}`, string(payload))

	resp := postAction(t, server, "room1", `{"action":"play","time":5}`)
	var actionResp actionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&actionResp))
	assert.Equal(t, 1, actionResp.SentTo)

	_, payload, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"play","time":5}`, string(payload))
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}
