package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/config"
)

type Storage struct {
	DB   *sql.DB
	exec bob.DB
}

// NewStorage opens the Postgres pool. The connection is verified lazily by the
// first query, or eagerly with Ping.
func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	return NewStorageFromDB(db), nil
}

func NewStorageFromDB(db *sql.DB) *Storage {
	return &Storage{
		DB:   db,
		exec: bob.NewDB(db),
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Read returns a Reader running each query directly on the pool.
func (s *Storage) Read() *Reader {
	return NewReader(s.exec)
}

// Write begins a database transaction. The caller must Commit or Rollback the
// returned Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.exec.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
