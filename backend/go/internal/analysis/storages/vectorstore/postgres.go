// Package vectorstore implements the knowledge vault on Postgres with the
// pgvector extension.
package vectorstore

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"VaultMind/backend/go/pkg/logger"
)

// The base search query binds $1 (query embedding), $2 (document scope) and
// $3 (limit); appended filter fragments therefore number their placeholders
// from 4.
const filterParamOffset = 4

// PostgresStore stores embedded chunks in a Postgres table and retrieves
// them by cosine distance, optionally narrowed by an appended filter
// fragment.
type PostgresStore struct {
	db    *sql.DB
	table string
	log   *logger.Logger
}

// NewPostgresStore creates a new PostgresStore over an established
// connection pool.
func NewPostgresStore(db *sql.DB, table string, log *logger.Logger) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("postgres connection is not initialized")
	}
	if table == "" {
		return nil, fmt.Errorf("vault table name is required")
	}
	return &PostgresStore{db: db, table: table, log: log}, nil
}

// FilterParamOffset returns the first positional parameter slot available to
// filter fragments composed into Search.
func (s *PostgresStore) FilterParamOffset() int {
	return filterParamOffset
}

// Add inserts embedded fragments into the vault inside one transaction.
func (s *PostgresStore) Add(ctx context.Context, fragments []*schema.Fragment) error {
	if len(fragments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin vault transaction: %w", err)
	}

	insert := fmt.Sprintf(
		`INSERT INTO %s (id, document_id, content, chunk_start, chunk_end, equipment_name, manufacturer, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::vector)`, s.table)

	for _, f := range fragments {
		if _, err := tx.ExecContext(ctx, insert,
			f.ID, f.DocumentID, f.Text, f.Start, f.End, f.EquipmentName, f.Manufacturer, vectorLiteral(f.Embedding),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert fragment %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vault transaction: %w", err)
	}

	s.log.Info(fmt.Sprintf("Stored %d fragments in the vault", len(fragments)))
	return nil
}

// Search returns the topK fragments ranked by cosine similarity to the query
// embedding. An empty documentID searches the whole vault. The filter
// fragment's condition is appended verbatim to the WHERE clause and its
// params are bound after the base query's, so it must have been built with
// FilterParamOffset.
func (s *PostgresStore) Search(ctx context.Context, embedding []float32, topK int, documentID string, filter schema.FilterFragment) ([]*schema.Fragment, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		`SELECT id, document_id, content, chunk_start, chunk_end, equipment_name, manufacturer,
		        1 - (embedding <=> $1::vector) AS score
		 FROM %s
		 WHERE ($2 = '' OR document_id = $2)`, s.table)
	sb.WriteString(filter.Condition)
	sb.WriteString(" ORDER BY embedding <=> $1::vector LIMIT $3")

	args := []interface{}{vectorLiteral(embedding), documentID, topK}
	for _, p := range filter.Params {
		args = append(args, p)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("vault query failed: %w", err)
	}
	defer rows.Close()

	var fragments []*schema.Fragment
	for rows.Next() {
		f := &schema.Fragment{}
		if err := rows.Scan(&f.ID, &f.DocumentID, &f.Text, &f.Start, &f.End, &f.EquipmentName, &f.Manufacturer, &f.Score); err != nil {
			return nil, fmt.Errorf("failed to scan vault row: %w", err)
		}
		fragments = append(fragments, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vault query failed: %w", err)
	}

	return fragments, nil
}

// vectorLiteral renders an embedding as a pgvector input literal.
func vectorLiteral(embedding []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}

// compile-time check to ensure PostgresStore implements the KnowledgeStore interface
var _ interfaces.KnowledgeStore = (*PostgresStore)(nil)
