package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/hub"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/renderer"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func newTestServer(t *testing.T) (*httptest.Server, *service.RefreshService, *hub.Hub) {
	t.Helper()

	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	logger := logging.NewSilent()
	quotes := testutil.NewMockQuoteSource()
	fundamentals := testutil.NewMockFundamentalsSource()
	refresh := service.NewRefreshService(testutil.NewMockHoldingSource(), quotes, service.WithFundamentals(fundamentals))

	snapshotHub := hub.New(logger, cfg.CORS.AllowedOrigins)
	go snapshotHub.Run()
	t.Cleanup(snapshotHub.Stop)
	refresh.Subscribe(snapshotHub.Publish)

	r, err := renderer.New("INR")
	require.NoError(t, err)

	router := NewRouter(
		service.NewSystemService(testutil.SetupTestDB(t), refresh, time.Minute),
		service.NewPortfolioService(refresh),
		refresh,
		service.NewMarketService(quotes, fundamentals, logger),
		r,
		snapshotHub,
		logger,
		cfg,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, refresh, snapshotHub
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_Routes(t *testing.T) {
	srv, _, _ := newTestServer(t)

	// nothing is served until the first refresh
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv.URL+"/api/portfolio").StatusCode)

	resp, err := http.Post(srv.URL+"/api/portfolio/refresh", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/api/system/health", http.StatusOK, "application/json"},
		{"/api/system/version", http.StatusOK, "application/json"},
		{"/api/portfolio", http.StatusOK, "application/json"},
		{"/api/portfolio/holdings?search=infy", http.StatusOK, "application/json"},
		{"/api/portfolio/holdings/TCS.NS", http.StatusOK, "application/json"},
		{"/api/portfolio/holdings/NOPE.NS", http.StatusNotFound, "application/json"},
		{"/api/portfolio/totals", http.StatusOK, "application/json"},
		{"/api/portfolio/sectors", http.StatusOK, "application/json"},
		{"/api/portfolio/sectors/chart.png", http.StatusOK, "image/png"},
		{"/api/portfolio/movers?count=3", http.StatusOK, "application/json"},
		{"/api/portfolio/movers?count=0", http.StatusBadRequest, "application/json"},
		{"/api/portfolio/report", http.StatusOK, "text/markdown; charset=utf-8"},
		{"/api/quote/INFY.NS", http.StatusOK, "application/json"},
		{"/api/fundamentals/INFY", http.StatusOK, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, srv.URL+tt.path)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
		})
	}
}

func TestRouter_RefreshIsPostOnly(t *testing.T) {
	srv, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusMethodNotAllowed, get(t, srv.URL+"/api/portfolio/refresh").StatusCode)
}

func TestRouter_CORS(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/portfolio", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_Stream(t *testing.T) {
	srv, refresh, snapshotHub := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/portfolio/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return snapshotHub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	snap, err := refresh.Refresh(t.Context())
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string `json:"type"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, hub.MessageTypeSnapshot, msg.Type)
	assert.Equal(t, snap.ID, msg.Data.ID)
}
