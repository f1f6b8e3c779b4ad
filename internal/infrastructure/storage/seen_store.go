package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

const seenTable = "seen_urls"

// SeenStore persists resolution outcomes keyed by URL in a SQL database.
// Record upserts, so a URL keeps one row carrying its latest status.
type SeenStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	now     func() time.Time
}

var _ ports.SeenStore = (*SeenStore)(nil)

func newSeenStore(db *sql.DB, placeholder sq.PlaceholderFormat) *SeenStore {
	return &SeenStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		now:     time.Now,
	}
}

// Contains reports whether url was ever recorded, whatever its status.
func (s *SeenStore) Contains(ctx context.Context, url string) (bool, error) {
	query, args, err := s.builder.
		Select("1").
		From(seenTable).
		Where(sq.Eq{"url": url}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build lookup: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("query seen url: %w", err)
	}
	return true, nil
}

// Record stores the outcome for url. It returns only after the write committed.
func (s *SeenStore) Record(ctx context.Context, url string, status domain.SeenStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q for %s", status, url)
	}

	query, args, err := s.builder.
		Insert(seenTable).
		Columns("url", "status", "recorded_at").
		Values(url, string(status), s.now().UTC().UnixMilli()).
		Suffix("ON CONFLICT (url) DO UPDATE SET status = excluded.status, recorded_at = excluded.recorded_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert seen url: %w", err)
	}
	return nil
}

// Records lists the most recently recorded URLs first.
func (s *SeenStore) Records(ctx context.Context, limit int) ([]domain.SeenRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := s.builder.
		Select("url", "status", "recorded_at").
		From(seenTable).
		OrderBy("recorded_at DESC", "url").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.SeenRecord
	for rows.Next() {
		var (
			rec    domain.SeenRecord
			status string
			millis int64
		)
		if err := rows.Scan(&rec.URL, &status, &millis); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Status = domain.SeenStatus(status)
		rec.RecordedAt = time.UnixMilli(millis).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return records, nil
}

// Close releases the database handle.
func (s *SeenStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
