package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"elektron/internal/chart"
	"elektron/internal/config"
	"elektron/internal/data"
	"elektron/internal/model"
)

func setTestLogger(t *testing.T) {
	t.Helper()
	restore := zap.ReplaceGlobals(zaptest.NewLogger(t))
	t.Cleanup(restore)
}

func stubUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T, upstreamURL, fontDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.UpstreamBaseURL = upstreamURL
	cfg.FontDir = fontDir
	client := data.NewSpotPriceClient(cfg.UpstreamBaseURL, cfg.Zone, nil)
	return NewRouter(cfg, client)
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestPricesHappyPath(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK,
		`[{"NOK_per_kWh":0.1234,"EUR_per_kWh":0.0108,"time_start":"2025-01-15T00:00:00+01:00"},
		  {"NOK_per_kWh":-0.05,"EUR_per_kWh":-0.004,"time_start":"2025-01-15T01:00:00+01:00"}]`)
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := serve(router, http.MethodGet, "/prices")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t,
		`[{"hour":0,"price":12.34,"time":"2025-01-15T00:00:00+01:00","price_nok":0.1234,"price_eur":0.0108},
		  {"hour":1,"price":-5.0,"time":"2025-01-15T01:00:00+01:00","price_nok":-0.05,"price_eur":-0.004}]`,
		w.Body.String())
}

func TestPricesRoundTripMatchesInProcess(t *testing.T) {
	setTestLogger(t)
	records := []model.PriceRecord{
		{NOKPerKWh: 0.9901, EURPerKWh: 0.0843, TimeStart: "2025-06-01T07:00:00+02:00"},
		{NOKPerKWh: 0.42, EURPerKWh: 0.0358, TimeStart: "2025-06-01T08:00:00+02:00"},
		{NOKPerKWh: 0, EURPerKWh: 0, TimeStart: "garbled"},
	}
	body, err := json.Marshal(records)
	require.NoError(t, err)
	upstream := stubUpstream(t, http.StatusOK, string(body))
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := serve(router, http.MethodGet, "/prices")

	require.Equal(t, http.StatusOK, w.Code)
	var got []chart.Point
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, chart.FromRecords(records), got)
}

func TestPricesUpstreamNotFound(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusNotFound, "")
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := serve(router, http.MethodGet, "/prices")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Error: "), "body %q", w.Body.String())
}

func TestPricesUpstreamMalformedJSON(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK, `"not json"`)
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := serve(router, http.MethodGet, "/prices")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Error: "), "body %q", w.Body.String())
}

func TestPricesUpstreamNullBody(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK, `null`)
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := serve(router, http.MethodGet, "/prices")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Error: "), "body %q", w.Body.String())
}

func TestPricesEmptyUpstreamArray(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK, `[]`)
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := serve(router, http.MethodGet, "/prices")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestFontTraversalRejected(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK, `[]`)
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := serve(router, http.MethodGet, "/fonts/../main.rs")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFontServedWithCachingHeaders(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK, `[]`)
	fontDir := t.TempDir()
	contents := []byte{0x77, 0x4f, 0x46, 0x32, 0xde, 0xad}
	require.NoError(t, os.WriteFile(filepath.Join(fontDir, "Regular.woff2"), contents, 0o644))
	router := newTestRouter(t, upstream.URL, fontDir)

	w := serve(router, http.MethodGet, "/fonts/Regular.woff2")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "font/woff2", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000", w.Header().Get("Cache-Control"))
	assert.Equal(t, contents, w.Body.Bytes())
}

func TestRootServesDashboard(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK, `[]`)
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := serve(router, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<!DOCTYPE html>")
}

func TestHealth(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK, `[]`)
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := serve(router, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestUnknownRouteAndMethodFallThrough(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK, `[]`)
	router := newTestRouter(t, upstream.URL, t.TempDir())

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/archive").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/prices").Code)
}

func TestCORSHeadersOnRequests(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK, `[]`)
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/prices", nil)
	req.Header.Set("Origin", "http://example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	setTestLogger(t)
	upstream := stubUpstream(t, http.StatusOK, `[]`)
	router := newTestRouter(t, upstream.URL, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/prices", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}
