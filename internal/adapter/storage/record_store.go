// internal/adapter/storage/record_store.go

package storage

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rotisserie/eris"

	"vizdash/internal/domain/record"
)

const postgresMigration = `
CREATE TABLE IF NOT EXISTS records (
	seq        BIGSERIAL PRIMARY KEY,
	id         TEXT NOT NULL UNIQUE,
	doc        JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_records_country ON records ((doc->>'country'));
CREATE INDEX IF NOT EXISTS idx_records_topic ON records ((doc->>'topic'));
`

// RecordStore implements record.Store on PostgreSQL. Each record is kept as a
// JSONB document so the collection stays schemaless.
type RecordStore struct {
	db *pgxpool.Pool
}

// NewRecordStore creates a new record store
func NewRecordStore(db *pgxpool.Pool) *RecordStore {
	return &RecordStore{
		db: db,
	}
}

// Migrate creates the records table
func (s *RecordStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

// Close closes the connection pool
func (s *RecordStore) Close() error {
	s.db.Close()
	return nil
}

// FindAll returns every record in insertion order
func (s *RecordStore) FindAll(ctx context.Context) ([]record.Record, error) {
	rows, err := s.db.Query(ctx, `SELECT doc FROM records ORDER BY seq`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query records")
	}
	defer rows.Close()

	records := make([]record.Record, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}

		r, err := decodeDocument(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate records")
	}

	return records, nil
}

// InsertMany appends records in one batch. Records without an id get a new UUID.
func (s *RecordStore) InsertMany(ctx context.Context, records []record.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		id, doc, err := encodeDocument(r)
		if err != nil {
			return 0, err
		}
		batch.Queue(`INSERT INTO records (id, doc) VALUES ($1, $2)`, id, doc)
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()

	// The batch runs in one implicit transaction, so a failure writes nothing
	for i := range records {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return 0, eris.Wrapf(record.ErrDuplicate, "postgres: insert record %d", i)
			}
			return 0, eris.Wrapf(err, "postgres: insert record %d", i)
		}
	}

	return len(records), nil
}

// encodeDocument assigns an id when missing and serialises the record
func encodeDocument(r record.Record) (string, []byte, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	doc, err := json.Marshal(r)
	if err != nil {
		return "", nil, eris.Wrapf(err, "storage: marshal record %s", r.ID)
	}
	return r.ID, doc, nil
}

func decodeDocument(doc []byte) (record.Record, error) {
	var r record.Record
	if err := json.Unmarshal(doc, &r); err != nil {
		return record.Record{}, eris.Wrap(err, "storage: unmarshal record")
	}
	return r, nil
}
