package httpx

import "net/http"

// El cliente manda su id de request en "X-Request-Id" y chi lo propaga.
// Este helper lo lee desde el request para correlacionar logs del servidor.
func RequestIDFrom(request *http.Request) string {
	if request == nil {
		return ""
	}
	return request.Header.Get("X-Request-Id")
}
