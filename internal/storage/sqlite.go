package storage

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/oboe/internal/models"
	"github.com/hyperjump/oboe/pkg/utils"
)

// SQLiteStore implements Store on an embedded SQLite database. SQLite has no
// vector extension here, so embeddings are stored as float32 blobs and
// distances are computed with an exact scan in Go. Intended for development
// and small deployments; the postgres backend is the production path.
type SQLiteStore struct {
	db         *sql.DB
	dimensions int
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string, dimensions int) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS embedding_store (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL,
		embedding BLOB NOT NULL,
		source TEXT,
		metadata TEXT,
		created INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_embedding_store_user_id ON embedding_store(user_id);
	CREATE INDEX IF NOT EXISTS idx_embedding_store_source ON embedding_store(source);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, dimensions: dimensions}, nil
}

// AddContent inserts a record in a single statement.
func (s *SQLiteStore) AddContent(ctx context.Context, rec *models.ContentRecord) error {
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
		metadata = string(data)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO embedding_store (id, user_id, content, embedding, source, metadata, created)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Content, encodeVector(rec.Embedding), source, metadata, rec.Created.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}
	return nil
}

// DeleteContent removes the record with id. Returns ErrNotFound when no row matched.
func (s *SQLiteStore) DeleteContent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM embedding_store WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search scans candidate rows (equality filters pushed to SQL) and computes
// cosine distances in Go, with the same ordering and threshold semantics as
// the postgres backend.
func (s *SQLiteStore) Search(ctx context.Context, queryVector []float32, q *models.SearchQuery) ([]*models.SearchResult, error) {
	query := `SELECT id, user_id, content, embedding, source, metadata, created FROM embedding_store`
	var (
		conds []string
		args  []interface{}
	)
	if q.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, q.UserID)
	}
	if q.Source != "" {
		conds = append(conds, "source = ?")
		args = append(args, q.Source)
	}
	if q.AfterTime != nil {
		conds = append(conds, "created >= ?")
		args = append(args, q.AfterTime.UnixNano())
	}
	if q.BeforeTime != nil {
		conds = append(conds, "created <= ?")
		args = append(args, q.BeforeTime.UnixNano())
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search content: %w", err)
	}
	defer rows.Close()

	var results []*models.SearchResult
	for rows.Next() {
		var (
			res       models.SearchResult
			embedding []byte
			source    sql.NullString
			metadata  sql.NullString
			created   int64
		)
		if err := rows.Scan(&res.ID, &res.UserID, &res.Content, &embedding, &source, &metadata, &created); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}

		vec, err := decodeVector(embedding)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", res.ID, err)
		}
		res.Distance = utils.CosineDistance(queryVector, vec)
		if q.DistanceThreshold != nil && res.Distance > *q.DistanceThreshold {
			continue
		}

		if source.Valid {
			res.Source = source.String
		}
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &res.Metadata); err != nil {
				return nil, fmt.Errorf("record %s: failed to unmarshal metadata: %w", res.ID, err)
			}
		}
		res.Created = time.Unix(0, created).UTC()
		results = append(results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search rows: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		if !results[i].Created.Equal(results[j].Created) {
			return results[i].Created.Before(results[j].Created)
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results, nil
}

// Ping verifies the database file is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// encodeVector serializes a vector as little-endian float32.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// decodeVector deserializes a little-endian float32 vector.
func decodeVector(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("malformed embedding blob of %d bytes", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec, nil
}
