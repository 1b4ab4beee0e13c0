package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusCreated, map[string]any{"id": float64(7)})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	require.Equal(t, float64(7), body["id"])
}

func TestJSON_EncodeError(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusTeapot, func() {})

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Contains(t, rec.Body.String(), "internal server error")
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	Message(rec, http.StatusNotFound, "product not found")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "product not found", body["message"])
	require.NotContains(t, body, "error")
}

func TestError(t *testing.T) {
	t.Run("with underlying error", func(t *testing.T) {
		rec := httptest.NewRecorder()

		Error(rec, http.StatusInternalServerError, "error fetching products", errors.New("connection reset"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, "error fetching products", body["message"])
		require.Equal(t, "connection reset", body["error"])
	})

	t.Run("nil error", func(t *testing.T) {
		rec := httptest.NewRecorder()

		Error(rec, http.StatusInternalServerError, "error fetching products", nil)

		body := decodeBody(t, rec)
		require.Equal(t, "", body["error"])
	})
}

func TestRequestIDFrom(t *testing.T) {
	require.Equal(t, "", RequestIDFrom(nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, "", RequestIDFrom(req))

	req.Header.Set("X-Request-Id", "req-123")
	require.Equal(t, "req-123", RequestIDFrom(req))
}
