// Package database implements the entity-store contract on Postgres
// using database/sql and lib/pq.
package database

import (
	"database/sql"

	"github.com/yahamanand-svg/School/app/store"
)

// PostgresStore is the production entity store.
type PostgresStore struct {
	db *sql.DB
}

var _ store.Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}
