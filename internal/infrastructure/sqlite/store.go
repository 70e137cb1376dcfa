// Package sqlite guarda las colecciones en un archivo SQLite embebido: una fila por
// colección con el documento JSON completo.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/Costbook-api/internal/domain/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ repository.DocumentStore = (*Store)(nil)

// Store DocumentStore sobre SQLite.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base en path, aplica los pragmas y las migraciones.
// WAL permite lecturas mientras se escribe; busy_timeout evita SQLITE_BUSY inmediatos.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	// SQLite admite un solo escritor.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: conectar %s: %w", path, err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migraciones: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context, c repository.Collection) ([]byte, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE collection = ?`, string(c)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: cargar %s: %w", c, err)
	}
	return []byte(body), nil
}

func (s *Store) Save(ctx context.Context, c repository.Collection, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, body, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (collection) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(c), string(data),
	)
	if err != nil {
		return fmt.Errorf("sqlite: guardar %s: %w", c, err)
	}
	return nil
}

func (s *Store) Discard(ctx context.Context, c repository.Collection) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ?`, string(c)); err != nil {
		return fmt.Errorf("sqlite: eliminar %s: %w", c, err)
	}
	return nil
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}
