package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hailam/minishare/internal/config"
	"github.com/hailam/minishare/internal/preview"
	"github.com/hailam/minishare/internal/storage"
)

const kingsCode = "0hXKCCuwuMo"

func kingsBoard() [][]string {
	return [][]string{
		{"", "", "k", ""},
		{"", "", "", ""},
		{"", "", "", ""},
		{"", "", "", ""},
		{"", "", "K", ""},
	}
}

// newTestServer returns a routed handler backed by an in-memory store.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	store, err := storage.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	renderer, err := preview.NewRenderer(24)
	require.NoError(t, err)

	h := &Handlers{
		Store:    store,
		Renderer: renderer,
		BaseURL:  "https://chess.example/editor",
		Version:  "test-version",
	}
	return NewServer(config.ServerConfig{Host: "localhost", Port: 0}, h).Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	w := do(t, newTestServer(t), "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "test-version", health.Version)
	assert.True(t, health.Storage)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDPassthrough(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestEncodeDecodeHandlers(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, "POST", "/api/encode", BoardRequest{Board: kingsBoard()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var enc EncodeResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&enc))
	assert.Equal(t, kingsCode, enc.Code)
	assert.Equal(t, "https://chess.example/editor?position="+kingsCode, enc.URL)

	w = do(t, h, "GET", "/api/decode?position="+enc.Code, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var dec DecodeResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dec))
	assert.Equal(t, kingsBoard(), dec.Board)
	assert.Equal(t, "2k1/4/4/4/2K1", dec.Placement)
	assert.Equal(t, 2, dec.Pieces)
}

func TestCodecErrors(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   any
		kind   string
	}{
		{"six rows", "POST", "/api/encode", BoardRequest{Board: append(kingsBoard(), []string{"", "", "", ""})}, "InvalidBoardShape"},
		{"bad piece", "POST", "/api/encode", BoardRequest{Board: [][]string{{"invalid-piece", "", "", ""}, {"", "", "", ""}, {"", "", "", ""}, {"", "", "", ""}, {"", "", "", ""}}}, "InvalidPieceSymbol"},
		{"overflow", "POST", "/api/encode", BoardRequest{Board: [][]string{{"p", "", "", ""}, {"", "", "", ""}, {"", "", "", ""}, {"", "", "", ""}, {"", "", "", ""}}}, "CodeOverflow"},
		{"charset", "GET", "/api/decode?position=invalid%40chars%21", nil, "InvalidCodeCharset"},
		{"too long", "GET", "/api/decode?position=" + strings.Repeat("A", 13), nil, "InvalidCodeLength"},
		{"missing", "GET", "/api/decode", nil, "InvalidCodeLength"},
		{"leading zero", "GET", "/api/decode?position=AB", nil, "NonCanonicalCode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.kind, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestInvalidJSON(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest("POST", "/api/encode", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsHandler(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, "POST", "/api/stats", BoardRequest{Board: kingsBoard()})
	require.Equal(t, http.StatusOK, w.Code)

	var stats StatsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, kingsCode, stats.SharingCode)
	assert.Equal(t, len(kingsCode), stats.CodeLength)
	assert.True(t, stats.RoundTripSuccess)
	assert.True(t, stats.URLSafe)
	assert.Nil(t, stats.Error)

	w = do(t, h, "POST", "/api/stats", BoardRequest{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"InvalidBoardShape"`)
}

func TestPreviewHandler(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, "GET", "/api/preview.png?position="+kingsCode, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 4*24, img.Bounds().Dx())

	w = do(t, h, "GET", "/api/preview.png?position=%21", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPositionsHandlers(t *testing.T) {
	h := newTestServer(t)

	w := do(t, h, "POST", "/api/positions", SaveRequest{Name: "kings", Board: kingsBoard()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var saved PositionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&saved))
	assert.Equal(t, kingsCode, saved.Code)
	assert.Equal(t, "kings", saved.Name)
	assert.Equal(t, kingsBoard(), saved.Board)

	w = do(t, h, "GET", "/api/positions/"+kingsCode, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "GET", "/api/positions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list PositionsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list.Positions, 1)
	assert.Equal(t, saved.ID, list.Positions[0].ID)

	w = do(t, h, "DELETE", "/api/positions/"+kingsCode, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/api/positions/"+kingsCode, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "GET", "/api/positions/AB", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPositionsDisabled(t *testing.T) {
	h := NewServer(config.ServerConfig{}, &Handlers{Version: "x"}).Handler()

	w := do(t, h, "GET", "/api/positions", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(t, h, "GET", "/api/preview.png?position=A", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// wsReply is WSResponse with the payload left raw.
type wsReply struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func TestWebSocket(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	send := func(typ, id string, payload any) wsReply {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		require.NoError(t, conn.WriteJSON(WSMessage{Type: typ, ID: id, Payload: raw}))

		var resp wsReply
		require.NoError(t, conn.ReadJSON(&resp))
		return resp
	}

	resp := send("ping", "1", nil)
	assert.Equal(t, "pong", resp.Type)
	assert.Equal(t, "1", resp.ID)

	resp = send("encode", "2", BoardRequest{Board: kingsBoard()})
	require.Equal(t, "result", resp.Type, resp.Error)
	var enc EncodeResponse
	require.NoError(t, json.Unmarshal(resp.Payload, &enc))
	assert.Equal(t, kingsCode, enc.Code)

	resp = send("decode", "3", DecodeRequest{Position: kingsCode})
	require.Equal(t, "result", resp.Type, resp.Error)
	var dec DecodeResponse
	require.NoError(t, json.Unmarshal(resp.Payload, &dec))
	assert.Equal(t, "2k1/4/4/4/2K1", dec.Placement)

	resp = send("decode", "4", DecodeRequest{Position: ""})
	assert.Equal(t, "error", resp.Type)
	assert.Equal(t, "InvalidCodeLength", resp.Code)

	resp = send("bogus", "5", nil)
	assert.Equal(t, "error", resp.Type)
}

func TestWebSocketRejectsOversizedMessage(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	big := `{"type":"encode","id":"1","payload":{"board":[["` + strings.Repeat("K", 2*maxBodyBytes) + `"]]}}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(big)))

	// The server closes instead of answering.
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "connection was left open")
	}
}

// failingWriter accepts headers but fails every body write.
type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("client went away")
}

func TestWriteJSONLogsWriteErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := &Handlers{Logger: zap.New(core)}

	h.writeJSON(failingWriter{httptest.NewRecorder()}, http.StatusOK, HealthResponse{Status: "ok"})

	entries := logs.FilterMessage("write response").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "client went away", entries[0].ContextMap()["error"])
}
