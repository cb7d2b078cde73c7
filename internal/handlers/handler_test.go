package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tinyurl/internal/config"
	"tinyurl/internal/repository"
	"tinyurl/internal/services"
	"tinyurl/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	store  *repository.Store
	clicks *repository.MemoryClickLog
	logs   *bytes.Buffer
}

type fixedGeo struct{}

func (fixedGeo) Lookup(string) (string, string) { return "Canada", "Toronto" }

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := config.Config{AppEnv: "test", BaseURL: "http://sho.rt", CodeLength: 6, CodeMaxAttempts: 10}

	clicks := repository.NewMemoryClickLog()
	store := repository.NewStore(clicks)
	audit := services.NewAuditService(logger)
	shortener := services.NewShortenerService(store, audit, utils.NewCodeGenerator(cfg.CodeLength, cfg.CodeMaxAttempts), cfg.BaseURL)

	h := NewHandler(
		cfg,
		logger,
		shortener,
		services.NewResolver(store),
		services.NewClickRecorder(store, fixedGeo{}, logger, false),
		services.NewManagementService(store, shortener, audit),
		services.NewAnalyticsService(store),
		services.NewBulkService(store, audit),
		services.NewDashboardService(store),
	)
	return &testServer{router: h.SetupRouter(), store: store, clicks: clicks, logs: logs}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Referer", "https://ref.example.com")
	return s.serve(req)
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) shorten(t *testing.T, body map[string]interface{}) ShortenResponse {
	t.Helper()
	w := s.do(http.MethodPost, "/shorten", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res ShortenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
