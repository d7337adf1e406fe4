package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	collection "commune/internal/collection/models"
	dErrors "commune/pkg/domain-errors"
)

// PostgresStore persists collections and records as JSONB documents.
// Schemas are user-defined, so the document is the natural storage shape;
// only the keys used for lookup are lifted into columns.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the backing tables. Idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			id         TEXT PRIMARY KEY,
			circle_id  TEXT NOT NULL,
			payload    JSONB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS collections_circle_idx ON collections (circle_id);

		CREATE TABLE IF NOT EXISTS records (
			collection_id TEXT NOT NULL REFERENCES collections (id) ON DELETE CASCADE,
			slug          TEXT NOT NULL,
			payload       JSONB NOT NULL,
			PRIMARY KEY (collection_id, slug)
		);

		CREATE TABLE IF NOT EXISTS activities (
			id            BIGSERIAL PRIMARY KEY,
			collection_id TEXT NOT NULL,
			record_slug   TEXT NOT NULL,
			payload       JSONB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS activities_record_idx ON activities (collection_id, record_slug);
	`)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to migrate collection tables")
	}
	return nil
}

func (s *PostgresStore) SaveCollection(ctx context.Context, col *collection.Collection) error {
	payload, err := json.Marshal(col)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode collection")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO collections (id, circle_id, payload) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET circle_id = $2, payload = $3
	`, col.ID, col.CircleID, payload)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save collection")
	}
	return nil
}

func (s *PostgresStore) GetCollection(ctx context.Context, id string) (*collection.Collection, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM collections WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load collection")
	}
	var col collection.Collection
	if err := json.Unmarshal(payload, &col); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt collection payload")
	}
	return &col, nil
}

func (s *PostgresStore) ListCollections(ctx context.Context, circleID string) ([]*collection.Collection, error) {
	rows, err := s.pool.Query(ctx, `SELECT payload FROM collections WHERE circle_id = $1`, circleID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list collections")
	}
	defer rows.Close()

	var out []*collection.Collection
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to scan collection")
		}
		var col collection.Collection
		if err := json.Unmarshal(payload, &col); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt collection payload")
		}
		out = append(out, &col)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list collections")
	}
	return out, nil
}

func (s *PostgresStore) SaveRecord(ctx context.Context, collectionID string, record collection.DataRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode record")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO records (collection_id, slug, payload) VALUES ($1, $2, $3)
		ON CONFLICT (collection_id, slug) DO UPDATE SET payload = $3
	`, collectionID, record.Slug, payload)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save record")
	}
	return nil
}

func (s *PostgresStore) GetRecord(ctx context.Context, collectionID, slug string) (collection.DataRecord, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM records WHERE collection_id = $1 AND slug = $2`,
		collectionID, slug,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return collection.DataRecord{}, ErrNotFound
	}
	if err != nil {
		return collection.DataRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load record")
	}
	var rec collection.DataRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return collection.DataRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt record payload")
	}
	return rec, nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, collectionID string) ([]collection.DataRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT payload FROM records WHERE collection_id = $1`, collectionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list records")
	}
	defer rows.Close()

	var out []collection.DataRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to scan record")
		}
		var rec collection.DataRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt record payload")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list records")
	}
	return out, nil
}

func (s *PostgresStore) DeleteRecord(ctx context.Context, collectionID, slug string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM records WHERE collection_id = $1 AND slug = $2`,
		collectionID, slug,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete record")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	_, err = s.pool.Exec(ctx,
		`DELETE FROM activities WHERE collection_id = $1 AND record_slug = $2`,
		collectionID, slug,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete record activities")
	}
	return nil
}

func (s *PostgresStore) AppendActivities(ctx context.Context, collectionID, slug string, activities []collection.Activity) error {
	for _, a := range activities {
		payload, err := json.Marshal(a)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode activity")
		}
		_, err = s.pool.Exec(ctx, `
			INSERT INTO activities (collection_id, record_slug, payload) VALUES ($1, $2, $3)
		`, collectionID, slug, payload)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append activity")
		}
	}
	return nil
}

func (s *PostgresStore) ListActivities(ctx context.Context, collectionID, slug string) ([]collection.Activity, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT payload FROM activities
		WHERE collection_id = $1 AND record_slug = $2
		ORDER BY id
	`, collectionID, slug)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list activities")
	}
	defer rows.Close()

	var out []collection.Activity
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to scan activity")
		}
		var a collection.Activity
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt activity payload")
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list activities")
	}
	return out, nil
}
