package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/linktag/linktag"
)

// Ensure RecordStore implements linktag.RecordStore at compile time.
var _ linktag.RecordStore = (*RecordStore)(nil)

// RecordStore persists the result collection in SQLite. Save replaces
// the whole collection in one transaction; Load returns records in
// their saved position order, so JSON and SQLite stores are
// interchangeable.
type RecordStore struct {
	db *DB
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

// Exists reports whether any records have been saved.
func (s *RecordStore) Exists() bool {
	var n int
	err := s.db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM records`).Scan(&n)
	return err == nil && n > 0
}

// Load returns the saved records ordered by position.
func (s *RecordStore) Load(ctx context.Context) ([]*linktag.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, body, hashtags
		FROM records
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []*linktag.Record
	for rows.Next() {
		var r linktag.Record
		if err := rows.Scan(&r.URL, &r.Title, &r.Body, &r.Hashtags); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, linktag.Errorf(linktag.ENOTFOUND, "no saved records")
	}
	return records, nil
}

// Save replaces the stored collection with the given records.
func (s *RecordStore) Save(ctx context.Context, records []*linktag.Record) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, r := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO records (id, url, title, body, hashtags, position, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), r.URL, r.Title, r.Body, r.Hashtags, i, now)
		if err != nil {
			return fmt.Errorf("inserting record %q: %w", r.URL, err)
		}
	}

	return tx.Commit()
}
