package produtos

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var ErrorNotFound = errors.New("produto not found")

// ValidationError es el rechazo de input con mensaje para el usuario.
// Se distingue del fallo de infraestructura: nunca se loguea como error del sistema.
type ValidationError struct {
	Message string
}

func (validationError *ValidationError) Error() string {
	return validationError.Message
}

// Mensajes documentados del contrato de validación.
const (
	MessageRequiredFields = "name and price are required."
	MessagePositivePrice  = "price must be a positive number."
)

// RepositoryAPI define lo que el service necesita de la capa de datos.
type RepositoryAPI interface {
	List(ctx context.Context) ([]Produto, error)
	GetByID(ctx context.Context, id string) (Produto, error)
	Insert(ctx context.Context, nome string, preco float64, descricao *string) (int64, error)
	Update(ctx context.Context, id string, nome string, preco float64, descricao *string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Service contiene las reglas del recurso produtos: validación de input
// y traducción de resultados de la DB a resultados de dominio.
type Service struct {
	repository RepositoryAPI
}

// NewService crea un service de produtos.
func NewService(repository RepositoryAPI) *Service {
	return &Service{repository: repository}
}

// List devuelve todos los produtos, sin orden impuesto.
func (service *Service) List(ctx context.Context) ([]Produto, error) {
	return service.repository.List(ctx)
}

// Get busca un produto por id. No valida el formato del id: se compara
// tal cual contra la DB.
func (service *Service) Get(ctx context.Context, id string) (Produto, error) {
	produto, err := service.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Produto{}, ErrorNotFound
		}
		return Produto{}, err
	}
	return produto, nil
}

// Create valida el payload y crea el produto. Devuelve el id asignado por la DB.
func (service *Service) Create(ctx context.Context, input ProdutoInput) (int64, error) {
	preco, err := validateInput(input)
	if err != nil {
		return 0, err
	}

	return service.repository.Insert(ctx, input.Nome, preco, input.Descricao)
}

// Update valida el payload y sobreescribe la fila completa.
// Cero filas afectadas => not found, distinto de validación y de fallo de DB.
func (service *Service) Update(ctx context.Context, id string, input ProdutoInput) error {
	preco, err := validateInput(input)
	if err != nil {
		return err
	}

	affected, err := service.repository.Update(ctx, id, input.Nome, preco, input.Descricao)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrorNotFound
	}

	return nil
}

// Delete borra el produto. Cero filas afectadas => not found.
func (service *Service) Delete(ctx context.Context, id string) error {
	affected, err := service.repository.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrorNotFound
	}

	return nil
}

// validateInput aplica las dos únicas reglas del contrato, en orden:
// presencia de nome y preco primero, positividad numérica después.
// El corte temprano hace que "falta preco" y "preco inválido" den mensajes distintos.
func validateInput(input ProdutoInput) (float64, error) {
	if input.Nome == "" || input.Preco.Missing() {
		return 0, &ValidationError{Message: MessageRequiredFields}
	}

	preco, err := input.Preco.Float()
	if err != nil || preco <= 0 {
		return 0, &ValidationError{Message: MessagePositivePrice}
	}

	return preco, nil
}
