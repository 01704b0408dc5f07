package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lexindex/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

type DBStorer interface {
	CreateDocument(context.Context, types.Document) error
	GetDocumentByID(context.Context, uuid.UUID) (*types.Document, error)
	ListDocuments(ctx context.Context, limit, offset int) ([]types.Document, error)
	CountDocuments(context.Context) (int, error)
	DeleteChunksByDocID(context.Context, uuid.UUID) error
	ReplaceChunks(ctx context.Context, docID uuid.UUID, chunks []types.Chunk) error
	CountChunksByDocID(context.Context, uuid.UUID) (int, error)
	FindDocumentsWithoutChunks(context.Context) ([]types.Document, error)
}

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{
		pool: pool,
	}, nil
}

func (p *PostgresStore) CreateDocument(ctx context.Context, doc types.Document) error {
	query := `INSERT INTO documents (id, filename, url, content_type, text_preview, full_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := p.pool.Exec(
		ctx,
		query,
		doc.ID,
		doc.Filename,
		doc.URL,
		doc.ContentType,
		doc.TextPreview,
		doc.FullText,
		doc.CreatedAt,
	)
	return err
}

func (p *PostgresStore) GetDocumentByID(ctx context.Context, docID uuid.UUID) (*types.Document, error) {
	query := `SELECT id, filename, url, content_type, COALESCE(text_preview, ''), COALESCE(full_text, ''), created_at
		FROM documents WHERE id = $1`

	doc := &types.Document{}
	err := p.pool.QueryRow(ctx, query, docID).Scan(
		&doc.ID,
		&doc.Filename,
		&doc.URL,
		&doc.ContentType,
		&doc.TextPreview,
		&doc.FullText,
		&doc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", docID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (p *PostgresStore) ListDocuments(ctx context.Context, limit, offset int) ([]types.Document, error) {
	query := `SELECT id, filename, url, content_type, COALESCE(text_preview, ''), created_at
		FROM documents ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := p.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocumentHeaders(rows)
}

func (p *PostgresStore) CountDocuments(ctx context.Context) (int, error) {
	var count int
	err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM documents").Scan(&count)
	return count, err
}

func (p *PostgresStore) DeleteChunksByDocID(ctx context.Context, docID uuid.UUID) error {
	_, err := p.pool.Exec(ctx, "DELETE FROM document_chunks WHERE document_id = $1", docID)
	return err
}

// ReplaceChunks swaps the full chunk set of a document in one transaction:
// delete everything, insert the new set in order, commit. The advisory
// lock serializes concurrent re-index runs of the same document so two
// interleaved delete/insert sequences can never leave a mixed chunk set.
func (p *PostgresStore) ReplaceChunks(ctx context.Context, docID uuid.UUID, chunks []types.Chunk) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))", docID); err != nil {
		return fmt.Errorf("lock document: %w", err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM document_chunks WHERE document_id = $1", docID); err != nil {
		return fmt.Errorf("delete stale chunks: %w", err)
	}

	query := `INSERT INTO document_chunks (id, document_id, position, chunk_text, embedding)
		VALUES ($1, $2, $3, $4, $5)`
	for _, c := range chunks {
		_, err := tx.Exec(ctx, query,
			c.ID, c.DocumentID, c.Position, c.Text, pgvector.NewVector(c.Embedding),
		)
		if err != nil {
			return fmt.Errorf("insert chunk %d: %w", c.Position, err)
		}
	}

	return tx.Commit(ctx)
}

func (p *PostgresStore) CountChunksByDocID(ctx context.Context, docID uuid.UUID) (int, error) {
	var count int
	err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM document_chunks WHERE document_id = $1", docID).Scan(&count)
	return count, err
}

// FindDocumentsWithoutChunks returns documents that have extracted text
// but no indexed chunks yet.
func (p *PostgresStore) FindDocumentsWithoutChunks(ctx context.Context) ([]types.Document, error) {
	query := `SELECT d.id, d.filename, d.url, d.content_type, COALESCE(d.text_preview, ''), d.created_at
		FROM documents d
		WHERE d.full_text IS NOT NULL AND d.full_text <> ''
		AND NOT EXISTS (SELECT 1 FROM document_chunks c WHERE c.document_id = d.id)`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocumentHeaders(rows)
}

func scanDocumentHeaders(rows pgx.Rows) ([]types.Document, error) {
	var docs []types.Document
	for rows.Next() {
		var doc types.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.Filename,
			&doc.URL,
			&doc.ContentType,
			&doc.TextPreview,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (p *PostgresStore) createTables(ctx context.Context) error {
	query := `
	CREATE EXTENSION IF NOT EXISTS vector;

	CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY,
		filename TEXT NOT NULL,
		url TEXT NOT NULL,
		content_type TEXT NOT NULL,
		text_preview TEXT,
		full_text TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS document_chunks (
		id UUID PRIMARY KEY,
		document_id UUID NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		position INT NOT NULL,
		chunk_text TEXT NOT NULL,
		-- Untyped vector: dimension varies with the embedding model tier
		-- (1536 or 3072) and is inferred from the stored array length.
		embedding vector,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_document_chunks_document_id ON document_chunks(document_id);
	`
	_, err := p.pool.Exec(ctx, query)
	return err
}

func (p *PostgresStore) Init(ctx context.Context) error {
	return p.createTables(ctx)
}

// Close closes the connection pool.
func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		slog.Info("postgres connection pool closed")
	}
	return nil
}
