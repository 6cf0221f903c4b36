package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
)

// PostgresStore backs document collections with a single JSONB table.
// The table is schema-free on purpose: documents are arbitrary field
// maps and all shape knowledge lives in the application layer.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Collection returns a Store bound to the named collection.
func (s *PostgresStore) Collection(name string) Store {
	return &pgCollection{db: s.db, name: name}
}

type pgCollection struct {
	db   *sqlx.DB
	name string
}

func (c *pgCollection) Insert(ctx context.Context, fields map[string]any) (string, error) {
	docID := uuid.New().String()

	data, err := json.Marshal(StripNilFields(fields))
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	const q = `INSERT INTO documents (doc_id, collection, data) VALUES ($1, $2, $3)`
	if _, err := c.db.ExecContext(ctx, q, docID, c.name, data); err != nil {
		return "", err
	}
	return docID, nil
}

func (c *pgCollection) Update(ctx context.Context, docID string, fields map[string]any) error {
	data, err := json.Marshal(StripNilFields(fields))
	if err != nil {
		return fmt.Errorf("failed to marshal document update: %w", err)
	}

	// JSONB concatenation gives the shallow-merge semantics the contract
	// requires: provided keys replace, absent keys survive.
	const q = `
        UPDATE documents
        SET data = data || $3::jsonb, updated_at = NOW()
        WHERE doc_id = $1 AND collection = $2`
	res, err := c.db.ExecContext(ctx, q, docID, c.name, data)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (c *pgCollection) QueryAll(ctx context.Context) ([]models.Document, error) {
	const q = `
        SELECT doc_id, data FROM documents
        WHERE collection = $1
        ORDER BY created_at DESC`

	type row struct {
		DocID string `db:"doc_id"`
		Data  []byte `db:"data"`
	}
	var rows []row
	if err := c.db.SelectContext(ctx, &rows, q, c.name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	docs := make([]models.Document, 0, len(rows))
	for _, r := range rows {
		var fields map[string]any
		if err := json.Unmarshal(r.Data, &fields); err != nil {
			return nil, fmt.Errorf("corrupt document %s in %s: %w", r.DocID, c.name, err)
		}
		docs = append(docs, models.Document{DocID: r.DocID, Fields: fields})
	}
	return docs, nil
}
