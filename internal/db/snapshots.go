package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/typeid"
)

var ErrNoSnapshot = errors.New("no snapshot for document")

// SnapshotStore persists whole-document snapshots. Each save is a new
// row with an incremented version; loads return the latest.
type SnapshotStore struct {
	pool *pgxpool.Pool
}

func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS document_snapshots (
			id          TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			version     INTEGER NOT NULL,
			document    JSONB NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_doc_version
			ON document_snapshots (document_id, version DESC);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Save(ctx context.Context, doc *document.Document) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	var currentVersion int32
	err = s.pool.QueryRow(ctx,
		`SELECT version FROM document_snapshots WHERE document_id = $1 ORDER BY version DESC LIMIT 1`,
		doc.ID,
	).Scan(&currentVersion)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("query latest version: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO document_snapshots (id, document_id, version, document) VALUES ($1, $2, $3, $4)`,
		typeid.NewSnapshotID(), doc.ID, currentVersion+1, docJSON,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	return nil
}

func (s *SnapshotStore) Latest(ctx context.Context, documentID string) (*document.Document, error) {
	var docJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM document_snapshots WHERE document_id = $1 ORDER BY version DESC LIMIT 1`,
		documentID,
	).Scan(&docJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	var doc document.Document
	if err := json.Unmarshal(docJSON, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	return &doc, nil
}
