package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/hyperjump/oboe/internal/models"
)

// PostgresStore implements Store on postgres with the pgvector extension.
// Nearest-neighbor ranking and distance computation are delegated to the
// extension's cosine operator; every operation is a single statement on a
// pooled connection.
type PostgresStore struct {
	pool       *pgxpool.Pool
	dimensions int
}

// NewPostgresStore connects a bounded pgx pool to connString, registers the
// pgvector codec, and initializes the schema.
func NewPostgresStore(ctx context.Context, connString string, dimensions int) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool, dimensions: dimensions}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS embedding_store (
			id UUID PRIMARY KEY,
			user_id VARCHAR(%d) NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			source VARCHAR(%d),
			metadata JSONB,
			created TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, models.MaxUserIDLength, s.dimensions, models.MaxSourceLength),
		`CREATE INDEX IF NOT EXISTS idx_embedding_store_embedding
			ON embedding_store USING hnsw (embedding vector_cosine_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_embedding_store_user_id ON embedding_store (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_embedding_store_source ON embedding_store (source)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// AddContent inserts a record in a single statement.
func (s *PostgresStore) AddContent(ctx context.Context, rec *models.ContentRecord) error {
	if len(rec.Embedding) != s.dimensions {
		return fmt.Errorf("embedding has %d dimensions, store expects %d", len(rec.Embedding), s.dimensions)
	}

	var source interface{}
	if rec.Source != "" {
		source = rec.Source
	}
	var metadata interface{}
	if rec.Metadata != nil {
		data, err := json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadata = data
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO embedding_store (id, user_id, content, embedding, source, metadata, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.UserID, rec.Content, pgvector.NewVector(rec.Embedding), source, metadata, rec.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}
	return nil
}

// DeleteContent removes the record with id. Returns ErrNotFound when no row matched.
func (s *PostgresStore) DeleteContent(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM embedding_store WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Search ranks records by cosine distance from queryVector using the
// pgvector <=> operator, applying the query's filters server-side.
func (s *PostgresStore) Search(ctx context.Context, queryVector []float32, q *models.SearchQuery) ([]*models.SearchResult, error) {
	args := []interface{}{pgvector.NewVector(queryVector)}
	conds := []string{}

	addCond := func(expr string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}
	if q.UserID != "" {
		addCond("user_id = $%d", q.UserID)
	}
	if q.Source != "" {
		addCond("source = $%d", q.Source)
	}
	if q.AfterTime != nil {
		addCond("created >= $%d", *q.AfterTime)
	}
	if q.BeforeTime != nil {
		addCond("created <= $%d", *q.BeforeTime)
	}
	if q.DistanceThreshold != nil {
		addCond("(embedding <=> $1) <= $%d", *q.DistanceThreshold)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, q.Limit)

	query := fmt.Sprintf(`
		SELECT id, user_id, content, source, metadata, created,
		       embedding <=> $1 AS distance
		FROM embedding_store
		%s
		ORDER BY embedding <=> $1, created, id
		LIMIT $%d`, where, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search content: %w", err)
	}
	defer rows.Close()

	var results []*models.SearchResult
	for rows.Next() {
		var (
			res      models.SearchResult
			source   *string
			metadata []byte
			created  time.Time
		)
		if err := rows.Scan(&res.ID, &res.UserID, &res.Content, &source, &metadata, &created, &res.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		if source != nil {
			res.Source = *source
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &res.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}
		res.Created = created
		results = append(results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search rows: %w", err)
	}
	return results, nil
}

// Ping verifies database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
