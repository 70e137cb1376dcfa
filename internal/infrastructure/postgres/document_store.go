package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Costbook-api/internal/domain/repository"
)

var (
	_ repository.DocumentStore  = (*DocumentStore)(nil)
	_ repository.RevisionLister = (*DocumentStore)(nil)
)

// DefaultHistory revisiones que se conservan por colección.
const DefaultHistory = 20

// DocumentStore guarda cada colección como una fila JSONB de la tabla documents.
// Cada Save deja además una copia en document_history (las últimas N).
type DocumentStore struct {
	pool    *pgxpool.Pool
	tx      *TxRunner
	history int
}

// NewDocumentStore construye el store. history <= 0 usa DefaultHistory.
func NewDocumentStore(pool *pgxpool.Pool, history int) *DocumentStore {
	if history <= 0 {
		history = DefaultHistory
	}
	return &DocumentStore{pool: pool, tx: NewTxRunner(pool), history: history}
}

func (s *DocumentStore) Load(ctx context.Context, c repository.Collection) ([]byte, error) {
	var body string
	err := s.pool.QueryRow(ctx,
		`SELECT body::text FROM documents WHERE collection = $1`, string(c),
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: cargar %s: %w", c, err)
	}
	return []byte(body), nil
}

func (s *DocumentStore) Save(ctx context.Context, c repository.Collection, data []byte) error {
	err := s.tx.Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, `
			INSERT INTO documents (collection, body, updated_at)
			VALUES ($1, $2::jsonb, now())
			ON CONFLICT (collection) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
			string(c), string(data),
		); err != nil {
			return err
		}
		if _, err := q.Exec(ctx,
			`INSERT INTO document_history (collection, body, amount_total) VALUES ($1, $2::jsonb, $3)`,
			string(c), string(data), SnapshotTotal(c, data),
		); err != nil {
			return err
		}
		_, err := q.Exec(ctx, `
			DELETE FROM document_history
			WHERE collection = $1
			  AND id NOT IN (
				SELECT id FROM document_history WHERE collection = $1 ORDER BY id DESC LIMIT $2
			  )`,
			string(c), s.history,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("postgres: guardar %s: %w", c, err)
	}
	return nil
}

// Revisions lee document_history; amount_total (NUMERIC) se escanea como decimal.
func (s *DocumentStore) Revisions(ctx context.Context, c repository.Collection, limit int) ([]repository.Revision, error) {
	if limit <= 0 || limit > s.history {
		limit = s.history
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, saved_at, amount_total, octet_length(body::text)
		FROM document_history
		WHERE collection = $1
		ORDER BY id DESC
		LIMIT $2`,
		string(c), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: historial %s: %w", c, err)
	}
	defer rows.Close()

	var out []repository.Revision
	for rows.Next() {
		var r repository.Revision
		if err := rows.Scan(&r.ID, &r.SavedAt, &r.Total, &r.Size); err != nil {
			return nil, fmt.Errorf("postgres: historial %s: %w", c, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: historial %s: %w", c, err)
	}
	return out, nil
}

func (s *DocumentStore) Discard(ctx context.Context, c repository.Collection) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1`, string(c)); err != nil {
		return fmt.Errorf("postgres: eliminar %s: %w", c, err)
	}
	return nil
}

// Close cierra el pool.
func (s *DocumentStore) Close() error {
	s.pool.Close()
	return nil
}
