package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lelo88/produtos-api-golang/internal/config"
	"github.com/Lelo88/produtos-api-golang/internal/db"
	"github.com/Lelo88/produtos-api-golang/internal/health"
)

func testConfig() config.Config {
	return config.Config{
		Port:           "3000",
		AllowedOrigins: []string{"http://localhost:4200"},
	}
}

// newTestRouter arma el router con un connector sin pool: sirve para probar
// el wiring de rutas y el gate de readiness sin DB.
func newTestRouter() http.Handler {
	return newRouter(testConfig(), db.NewConnector("postgres://example"))
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	message, _ := body["message"].(string)
	return message
}

func TestRouter_Liveness(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, health.LivenessMessage, rec.Body.String())
}

func TestRouter_ReadinessGate(t *testing.T) {
	router := newTestRouter()

	// Sin pool todavía: /ready y todo /produtos responden 503.
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/ready"},
		{http.MethodGet, "/produtos"},
		{http.MethodGet, "/produtos/1"},
		{http.MethodPost, "/produtos"},
		{http.MethodPut, "/produtos/1"},
		{http.MethodDelete, "/produtos/1"},
	}

	for _, tt := range paths {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, http.StatusServiceUnavailable, rec.Code)
			require.Contains(t, decodeMessage(t, rec), "not ready")
		})
	}
}

func TestRouter_RoutingErrors(t *testing.T) {
	router := newTestRouter()

	t.Run("unknown path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "resource not found", decodeMessage(t, rec))
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		require.Equal(t, "method not allowed", decodeMessage(t, rec))
	})
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter()

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/produtos", nil)
		req.Header.Set("Origin", "http://localhost:4200")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, "http://localhost:4200", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight from disallowed origin gets no grant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/produtos", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("request without origin passes straight through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
	})
}
