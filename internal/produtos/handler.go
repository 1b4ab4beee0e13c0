package produtos

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/produtos-api-golang/internal/httpx"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	List(ctx context.Context) ([]Produto, error)
	Get(ctx context.Context, id string) (Produto, error)
	Create(ctx context.Context, input ProdutoInput) (int64, error)
	Update(ctx context.Context, id string, input ProdutoInput) error
	Delete(ctx context.Context, id string) error
}

// Hook para capturar logs en tests.
var logfFn = log.Printf

// Handler HTTP para produtos.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de produtos.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// createResponse ecoa el payload tal como vino, más el id generado.
type createResponse struct {
	Message string       `json:"message"`
	ID      int64        `json:"id"`
	Produto ProdutoInput `json:"produto"`
}

type updateResponse struct {
	Message string         `json:"message"`
	Produto updatedProduto `json:"produto"`
}

// updatedProduto es el eco de update: el id es el string crudo del path.
type updatedProduto struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Preco     Preco   `json:"preco"`
	Descricao *string `json:"descricao,omitempty"`
}

// List maneja GET /produtos.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	listed, err := handler.service.List(request.Context())
	if err != nil {
		handler.fail(writer, request, "error fetching products", err)
		return
	}

	httpx.JSON(writer, http.StatusOK, listed)
}

// GetByID maneja GET /produtos/{id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	produto, err := handler.service.Get(request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrorNotFound) {
			httpx.Message(writer, http.StatusNotFound, "product not found")
			return
		}
		handler.fail(writer, request, "error fetching product", err)
		return
	}

	httpx.JSON(writer, http.StatusOK, produto)
}

// Create maneja POST /produtos.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input ProdutoInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Message(writer, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := handler.service.Create(request.Context(), input)
	if err != nil {
		var validationError *ValidationError
		if errors.As(err, &validationError) {
			httpx.Message(writer, http.StatusBadRequest, validationError.Message)
			return
		}
		handler.fail(writer, request, "error creating product", err)
		return
	}

	httpx.JSON(writer, http.StatusCreated, createResponse{
		Message: "product created successfully",
		ID:      id,
		Produto: input,
	})
}

// Update maneja PUT /produtos/{id}. Sobreescritura completa, sin parciales.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	var input ProdutoInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Message(writer, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		var validationError *ValidationError
		switch {
		case errors.As(err, &validationError):
			httpx.Message(writer, http.StatusBadRequest, validationError.Message)
		case errors.Is(err, ErrorNotFound):
			httpx.Message(writer, http.StatusNotFound, "product not found for update")
		default:
			handler.fail(writer, request, "error updating product", err)
		}
		return
	}

	httpx.JSON(writer, http.StatusOK, updateResponse{
		Message: "product updated successfully",
		Produto: updatedProduto{
			ID:        id,
			Nome:      input.Nome,
			Preco:     input.Preco,
			Descricao: input.Descricao,
		},
	})
}

// Delete maneja DELETE /produtos/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	err := handler.service.Delete(request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrorNotFound) {
			httpx.Message(writer, http.StatusNotFound, "product not found for deletion")
			return
		}
		handler.fail(writer, request, "error deleting product", err)
		return
	}

	httpx.Message(writer, http.StatusOK, "product deleted successfully")
}

// fail registra el fallo de infraestructura del lado servidor y responde 500
// con el detalle. Los errores de validación y not-found nunca pasan por acá.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, message string, err error) {
	logfFn("[%s] %s: %v", httpx.RequestIDFrom(request), message, err)
	httpx.Error(writer, http.StatusInternalServerError, message, err)
}
