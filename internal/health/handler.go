package health

import (
	"net/http"

	"github.com/Lelo88/produtos-api-golang/internal/httpx"
)

// LivenessMessage es el texto plano de la raíz: el proceso está vivo,
// sin afirmar nada sobre la DB.
const LivenessMessage = "produtos CRUD API is running"

const notReadyMessage = "service unavailable: database connection not ready"

// ReadyChecker es lo que health necesita saber del connector.
type ReadyChecker interface {
	Ready() bool
}

// Handler encapsula los endpoints de salud.
type Handler struct {
	readiness ReadyChecker
}

// New crea un handler de salud atado a una señal de readiness.
func New(readiness ReadyChecker) *Handler {
	return &Handler{readiness: readiness}
}

// Live maneja GET /. Solo dice que el proceso responde.
func (handler *Handler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(LivenessMessage))
}

// Ready maneja GET /ready: 200 con la DB conectada, 503 mientras no.
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if handler.readiness == nil || !handler.readiness.Ready() {
		httpx.Message(w, http.StatusServiceUnavailable, notReadyMessage)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// RequireReady corta con 503 los requests que llegan antes de la primera
// conexión exitosa, en lugar de dejar que fallen con un 500 opaco.
func RequireReady(readiness ReadyChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if readiness == nil || !readiness.Ready() {
				httpx.Message(w, http.StatusServiceUnavailable, notReadyMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
