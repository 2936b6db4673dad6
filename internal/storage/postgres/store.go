// Package postgres implements the mirroring engine's relational
// galleryinfo store: the full structural record, stored as jsonb and
// addressed by id.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/saebasol/sunflower/internal/galleryinfo"
)

// ErrAlreadyExists is returned by Add when a record for the id already
// exists; the mirroring engine only ever adds ids it has just computed
// as missing, so this indicates a races-with-itself bug upstream.
var ErrAlreadyExists = errors.New("postgres: galleryinfo already exists")

// ErrNotFound is returned by Get when no row exists for the id.
var ErrNotFound = errors.New("postgres: galleryinfo not found")

// Store is a jackc/pgx-backed, jmoiron/sqlx-wrapped relational store for
// Galleryinfo records. It implements mirror.RelationalGalleryinfo.
type Store struct {
	db *sqlx.DB
}

// Open connects to Postgres via dsn using the pgx stdlib driver and wraps
// the resulting *sql.DB with sqlx.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	return &Store{db: db}, nil
}

// New wraps an already-open sqlx.DB, for callers that manage the
// connection pool themselves (tests, shared pools).
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

type row struct {
	ID   int64  `db:"id"`
	Data []byte `db:"data"`
}

// Get returns the galleryinfo stored for id.
func (s *Store) Get(ctx context.Context, id int64) (galleryinfo.Galleryinfo, error) {
	var r row
	err := s.db.GetContext(ctx, &r, `SELECT id, data FROM galleryinfo WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return galleryinfo.Galleryinfo{}, ErrNotFound
	}
	if err != nil {
		return galleryinfo.Galleryinfo{}, fmt.Errorf("postgres: get %d: %w", id, err)
	}

	var g galleryinfo.Galleryinfo
	if err := json.Unmarshal(r.Data, &g); err != nil {
		return galleryinfo.Galleryinfo{}, fmt.Errorf("postgres: decode %d: %w", id, err)
	}
	return g, nil
}

// Add inserts g. It fails with ErrAlreadyExists if a row for g.ID is
// already present; the engine never upserts, it always deletes first.
func (s *Store) Add(ctx context.Context, g galleryinfo.Galleryinfo) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("postgres: encode %d: %w", g.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO galleryinfo (id, data) VALUES ($1, $2)`, g.ID, data)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("postgres: add %d: %w", g.ID, err)
	}
	return nil
}

// Delete removes the row for id, if any. Deleting an absent id is not an
// error: the integrity checker's delete-then-recreate repair calls
// Delete unconditionally.
func (s *Store) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM galleryinfo WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete %d: %w", id, err)
	}
	return nil
}

// AllIDs returns every id currently stored, ascending.
func (s *Store) AllIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT id FROM galleryinfo ORDER BY id`); err != nil {
		return nil, fmt.Errorf("postgres: all ids: %w", err)
	}
	return ids, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
