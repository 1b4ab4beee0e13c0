package produtos

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB es lo mínimo que el repositorio necesita del pool.
// Lo satisfacen *pgxpool.Pool y *db.Connector; permite fakes en tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository accede a la tabla produtos.
// Contiene SQL y mapeo DB → modelo; nada de reglas de negocio.
type Repository struct {
	database DB
}

// NewRepository crea un repositorio de produtos.
func NewRepository(database DB) *Repository {
	return &Repository{database: database}
}

// List devuelve todas las filas en el orden que decida la DB (sin ORDER BY).
// El slice nunca es nil para que el JSON de lista vacía sea [] y no null.
func (repository *Repository) List(ctx context.Context) ([]Produto, error) {
	const query = `SELECT id, nome, preco::float8, descricao FROM produtos;`

	rows, err := repository.database.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	produtos := make([]Produto, 0)
	for rows.Next() {
		var produto Produto
		if err := rows.Scan(&produto.ID, &produto.Nome, &produto.Preco, &produto.Descricao); err != nil {
			return nil, err
		}
		produtos = append(produtos, produto)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return produtos, nil
}

// GetByID busca una fila por id. El id llega como string crudo del path;
// la DB resuelve la comparación (o falla si no castea a bigint).
func (repository *Repository) GetByID(ctx context.Context, id string) (Produto, error) {
	const query = `SELECT id, nome, preco::float8, descricao FROM produtos WHERE id = $1;`

	var produto Produto
	err := repository.database.QueryRow(ctx, query, id).
		Scan(&produto.ID, &produto.Nome, &produto.Preco, &produto.Descricao)
	if err != nil {
		return Produto{}, err
	}

	return produto, nil
}

// Insert crea una fila y devuelve el id generado por la DB.
func (repository *Repository) Insert(ctx context.Context, nome string, preco float64, descricao *string) (int64, error) {
	const query = `
		INSERT INTO produtos (nome, preco, descricao)
		VALUES ($1, $2, $3)
		RETURNING id;
	`

	var id int64
	if err := repository.database.QueryRow(ctx, query, nome, preco, descricao).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

// Update sobreescribe los tres campos mutables y devuelve cuántas filas tocó.
func (repository *Repository) Update(ctx context.Context, id string, nome string, preco float64, descricao *string) (int64, error) {
	const query = `UPDATE produtos SET nome = $1, preco = $2, descricao = $3 WHERE id = $4;`

	tag, err := repository.database.Exec(ctx, query, nome, preco, descricao, id)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// Delete borra la fila y devuelve cuántas filas tocó.
func (repository *Repository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM produtos WHERE id = $1;`

	tag, err := repository.database.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
