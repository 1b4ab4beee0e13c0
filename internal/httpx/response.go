package httpx

import (
	"encoding/json"
	"net/http"
)

// MessageBody es el cuerpo mínimo de la API: solo un mensaje para humanos.
// Lo usan las respuestas de validación, not-found y acks de borrado.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody acompaña los fallos de infraestructura (500): mensaje para
// humanos más el detalle del error subyacente.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// JSON escribe una respuesta JSON con headers correctos.
// Nota: en caso de error de encodeo, responde 500 de forma segura.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)

	if err := enc.Encode(payload); err != nil {
		// Último recurso: no se pudo serializar JSON.
		http.Error(w, `{"message":"internal server error"}`, http.StatusInternalServerError)
	}
}

// Message devuelve un cuerpo {message}.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// Error devuelve un cuerpo {message, error} con el detalle subyacente.
func Error(w http.ResponseWriter, status int, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	JSON(w, status, ErrorBody{Message: message, Error: detail})
}
