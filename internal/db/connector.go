package db

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotReady indica que todavía no hay pool disponible.
// La capa HTTP lo traduce a 503; acá es solo un error de dominio.
var ErrNotReady = errors.New("database connection not ready")

const (
	initialRetryDelay = 1 * time.Second
	maxRetryDelay     = 30 * time.Second
)

var (
	connectFn = NewPool
	sleepFn   = func(ctx context.Context, delay time.Duration) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			return nil
		}
	}
	logfFn = log.Printf
)

// Connector es el dueño de la conexión a la DB durante toda la vida del proceso.
// Arranca sin pool y lo obtiene en segundo plano (Run); mientras tanto toda
// operación devuelve ErrNotReady en lugar de encolar requests.
type Connector struct {
	databaseURL string
	pool        atomic.Pointer[pgxpool.Pool]
}

// NewConnector crea un connector sin conectar todavía.
func NewConnector(databaseURL string) *Connector {
	return &Connector{databaseURL: databaseURL}
}

// Run intenta conectar con backoff exponencial acotado hasta lograrlo
// o hasta que el contexto se cancele. Loguea cada intento fallido.
func (connector *Connector) Run(ctx context.Context) error {
	delay := initialRetryDelay

	for {
		pool, err := connectFn(ctx, connector.databaseURL)
		if err == nil {
			connector.pool.Store(pool)
			logfFn("connected to database")
			return nil
		}

		logfFn("database connection failed: %v (retrying in %s)", err, delay)

		if err := sleepFn(ctx, delay); err != nil {
			// Proceso apagándose antes de conectar: no es un error del connector.
			return nil
		}

		delay *= 2
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}

// Ready indica si ya hay un pool utilizable.
func (connector *Connector) Ready() bool {
	return connector.pool.Load() != nil
}

// Close cierra el pool si existe.
func (connector *Connector) Close() {
	if pool := connector.pool.Swap(nil); pool != nil {
		pool.Close()
	}
}

// Query delega en el pool activo.
func (connector *Connector) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	pool := connector.pool.Load()
	if pool == nil {
		return nil, ErrNotReady
	}
	return pool.Query(ctx, sql, args...)
}

// QueryRow delega en el pool activo.
// pgx difiere los errores de QueryRow al Scan, así que acá hacemos lo mismo.
func (connector *Connector) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	pool := connector.pool.Load()
	if pool == nil {
		return errRow{err: ErrNotReady}
	}
	return pool.QueryRow(ctx, sql, args...)
}

// Exec delega en el pool activo.
func (connector *Connector) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	pool := connector.pool.Load()
	if pool == nil {
		return pgconn.CommandTag{}, ErrNotReady
	}
	return pool.Exec(ctx, sql, args...)
}

type errRow struct {
	err error
}

func (row errRow) Scan(dest ...any) error {
	return row.err
}
