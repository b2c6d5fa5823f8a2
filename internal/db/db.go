// Package db arma el pool de conexiones a PostgreSQL (Supabase).
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// connectTimeout evita que el arranque quede colgado si la DB no responde.
const connectTimeout = 5 * time.Second

// Options configura el pool.
type Options struct {
	URL string
	// MaxConns <= 0 deja el default de pgx.
	MaxConns int32
}

type poolPinger interface {
	Ping(ctx context.Context) error
	Close()
}

var (
	parseConfig = pgxpool.ParseConfig
	newPool     = pgxpool.NewWithConfig
	pingPool    = func(ctx context.Context, pool poolPinger) error {
		return pool.Ping(ctx)
	}
	closePool = func(pool poolPinger) {
		pool.Close()
	}
)

// NewPool crea un pool de conexiones y valida que la DB responda.
func NewPool(ctx context.Context, opts Options) (*pgxpool.Pool, error) {
	config, err := parseConfig(opts.URL)
	if err != nil {
		// El error de pgx puede incluir la URL con password: no lo envolvemos.
		return nil, errors.New("parse database url: invalid connection string")
	}
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := newPool(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Validación temprana: asegura que la app no arranca "a medias".
	if err := pingPool(ctx, pool); err != nil {
		closePool(pool)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
