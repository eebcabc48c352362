package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"staff_portal/internal/config"
	"staff_portal/internal/models"
	"staff_portal/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresRepo stores the snapshot as one JSONB row of the documents table.
type PostgresRepo struct {
	pool *pgxpool.Pool
	name string
}

func New(ctx context.Context, cfg config.Postgres, document string) (*PostgresRepo, error) {
	const op = "storage.postgres.New"

	poolConfig, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", op, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PostgresRepo{pool: pool, name: document}, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepo) Load(ctx context.Context) (*models.Snapshot, error) {
	const op = "storage.postgres.Load"

	query := `SELECT body FROM documents WHERE name = $1;`

	var body []byte

	err := r.pool.QueryRow(ctx, query, r.name).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Empty(), nil
		}

		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	snap, err := storage.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return snap, nil
}

func (r *PostgresRepo) Save(ctx context.Context, snap *models.Snapshot) error {
	const op = "storage.postgres.Save"

	body, err := storage.Encode(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO documents (name, body, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE
		SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at;
	`

	if _, err := r.pool.Exec(ctx, query, r.name, body); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return fmt.Errorf("%s: %w: %s (%s)", op, storage.ErrIO, pgErr.Message, pgErr.Code)
		}

		return fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	return nil
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

// * dsn builds the pgx connection string.
func dsn(cfg config.Postgres) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s database=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
}
