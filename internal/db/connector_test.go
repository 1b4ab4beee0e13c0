package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func restoreConnectorHooks(t *testing.T) {
	t.Helper()
	originalConnect := connectFn
	originalSleep := sleepFn
	originalLogf := logfFn
	t.Cleanup(func() {
		connectFn = originalConnect
		sleepFn = originalSleep
		logfFn = originalLogf
	})
	logfFn = func(format string, args ...any) {}
}

func TestConnector_Run(t *testing.T) {
	t.Run("retries with exponential backoff until connected", func(t *testing.T) {
		restoreConnectorHooks(t)

		poolInstance := &pgxpool.Pool{}
		attempts := 0
		connectFn = func(ctx context.Context, url string) (*pgxpool.Pool, error) {
			attempts++
			if attempts < 4 {
				return nil, errors.New("connection refused")
			}
			return poolInstance, nil
		}

		var delays []time.Duration
		sleepFn = func(ctx context.Context, delay time.Duration) error {
			delays = append(delays, delay)
			return nil
		}

		connector := NewConnector("postgres://example")
		require.False(t, connector.Ready())

		err := connector.Run(context.Background())

		require.NoError(t, err)
		require.True(t, connector.Ready())
		require.Equal(t, 4, attempts)
		require.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}, delays)
	})

	t.Run("backoff delay is capped", func(t *testing.T) {
		restoreConnectorHooks(t)

		attempts := 0
		connectFn = func(ctx context.Context, url string) (*pgxpool.Pool, error) {
			attempts++
			if attempts < 10 {
				return nil, errors.New("connection refused")
			}
			return &pgxpool.Pool{}, nil
		}

		var last time.Duration
		sleepFn = func(ctx context.Context, delay time.Duration) error {
			last = delay
			return nil
		}

		connector := NewConnector("postgres://example")
		require.NoError(t, connector.Run(context.Background()))
		require.Equal(t, maxRetryDelay, last)
	})

	t.Run("stops without error on context cancellation", func(t *testing.T) {
		restoreConnectorHooks(t)

		connectFn = func(ctx context.Context, url string) (*pgxpool.Pool, error) {
			return nil, errors.New("connection refused")
		}
		sleepFn = func(ctx context.Context, delay time.Duration) error {
			return context.Canceled
		}

		connector := NewConnector("postgres://example")
		err := connector.Run(context.Background())

		require.NoError(t, err)
		require.False(t, connector.Ready())
	})

	t.Run("logs each failed attempt", func(t *testing.T) {
		restoreConnectorHooks(t)

		var logged []string
		logfFn = func(format string, args ...any) {
			logged = append(logged, format)
		}

		attempts := 0
		connectFn = func(ctx context.Context, url string) (*pgxpool.Pool, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("connection refused")
			}
			return &pgxpool.Pool{}, nil
		}
		sleepFn = func(ctx context.Context, delay time.Duration) error {
			return nil
		}

		connector := NewConnector("postgres://example")
		require.NoError(t, connector.Run(context.Background()))
		require.Len(t, logged, 3) // dos fallos + conexión exitosa
	})
}

func TestConnector_NotReady(t *testing.T) {
	connector := NewConnector("postgres://example")

	rows, err := connector.Query(context.Background(), "SELECT 1")
	require.ErrorIs(t, err, ErrNotReady)
	require.Nil(t, rows)

	err = connector.QueryRow(context.Background(), "SELECT 1").Scan()
	require.ErrorIs(t, err, ErrNotReady)

	tag, err := connector.Exec(context.Background(), "DELETE FROM produtos")
	require.ErrorIs(t, err, ErrNotReady)
	require.Zero(t, tag.RowsAffected())
}

func TestConnector_CloseWithoutPool(t *testing.T) {
	connector := NewConnector("postgres://example")
	// No debe entrar en pánico si nunca hubo pool.
	connector.Close()
	require.False(t, connector.Ready())
}
