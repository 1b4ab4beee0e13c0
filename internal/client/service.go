package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Produto es el espejo consumidor del recurso del servidor.
type Produto struct {
	ID        int64   `json:"id"`
	Nome      string  `json:"nome"`
	Preco     float64 `json:"preco"`
	Descricao *string `json:"descricao"`
}

// ProdutoForm es el payload de create/update tal como lo tipea el usuario:
// preco viaja como texto y el servidor lo valida.
type ProdutoForm struct {
	Nome      string  `json:"nome"`
	Preco     string  `json:"preco"`
	Descricao *string `json:"descricao,omitempty"`
}

// APIError normaliza cualquier fallo de transporte o de la API en un solo
// error legible. No distingue 400 de 404 de 500 más allá del texto.
type APIError struct {
	Status  int
	Message string
}

func (apiError *APIError) Error() string {
	return fmt.Sprintf("error code %d: %s", apiError.Status, apiError.Message)
}

// Service es la capa HTTP del consumidor: un método por operación de la API.
// Sin retry, sin caché, sin deduplicación.
type Service struct {
	baseURL    string
	httpClient *http.Client
}

// NewService crea un service apuntando a la base de la API (ej: http://localhost:3000).
func NewService(baseURL string) *Service {
	return &Service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// List trae todos los produtos.
func (service *Service) List(ctx context.Context) ([]Produto, error) {
	var produtos []Produto
	if err := service.do(ctx, http.MethodGet, "/produtos", nil, &produtos); err != nil {
		return nil, err
	}
	return produtos, nil
}

// Get trae un produto por id.
func (service *Service) Get(ctx context.Context, id int64) (Produto, error) {
	var produto Produto
	if err := service.do(ctx, http.MethodGet, "/produtos/"+formatID(id), nil, &produto); err != nil {
		return Produto{}, err
	}
	return produto, nil
}

// createdBody es lo único que el consumidor necesita de la respuesta de create.
type createdBody struct {
	ID int64 `json:"id"`
}

// Create envía el alta y devuelve el id asignado por el servidor.
func (service *Service) Create(ctx context.Context, form ProdutoForm) (int64, error) {
	var created createdBody
	if err := service.do(ctx, http.MethodPost, "/produtos", form, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// Update sobreescribe el produto completo.
func (service *Service) Update(ctx context.Context, id int64, form ProdutoForm) error {
	return service.do(ctx, http.MethodPut, "/produtos/"+formatID(id), form, nil)
}

// Delete borra el produto.
func (service *Service) Delete(ctx context.Context, id int64) error {
	return service.do(ctx, http.MethodDelete, "/produtos/"+formatID(id), nil, nil)
}

// do arma el request, adjunta un id de correlación y normaliza errores.
func (service *Service) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequestWithContext(ctx, method, service.baseURL+path, reader)
	if err != nil {
		return err
	}
	request.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := service.httpClient.Do(request)
	if err != nil {
		return &APIError{Status: 0, Message: err.Error()}
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode >= http.StatusBadRequest {
		return service.asAPIError(response)
	}

	if out != nil {
		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			return &APIError{Status: response.StatusCode, Message: "invalid response body: " + err.Error()}
		}
	}

	return nil
}

// asAPIError intenta leer el {message} del cuerpo; si no hay, usa el status text.
func (service *Service) asAPIError(response *http.Response) error {
	apiError := &APIError{
		Status:  response.StatusCode,
		Message: http.StatusText(response.StatusCode),
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(response.Body).Decode(&body); err == nil && body.Message != "" {
		apiError.Message = body.Message
	}

	return apiError
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
