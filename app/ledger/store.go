// Package ledger is the persistent record of article identifiers that
// have already been published. An identifier is added only after the
// publisher confirms draft creation, and is never removed except by the
// operator-facing Clear.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

// Entry records one published article.
type Entry struct {
	ID          string
	Title       string
	SourceURL   string
	DraftID     string
	PublishedAt time.Time
}

// Store is the sqlite-backed ledger. Safe for concurrent use by
// multiple feed workers; writes are serialized through a single
// connection. The check-then-add window between Contains and Add is an
// accepted limitation, not a locking bug.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the ledger database at path and applies
// pending migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	// sqlite allows one writer; a single connection avoids lock churn
	// between workers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping ledger database: %w", err)
	}

	if _, _, err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Contains reports whether the identifier has been published in any
// prior run.
func (s *Store) Contains(ctx context.Context, id string) (bool, error) {
	query, args, err := sq.Select("1").
		From("published_articles").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check ledger: %w", err)
	}

	return true, nil
}

// Add records a published article. Adding an identifier that is already
// present is a no-op.
func (s *Store) Add(ctx context.Context, entry Entry) error {
	publishedAt := entry.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}

	query, args, err := sq.Insert("published_articles").
		Columns("id", "title", "source_url", "draft_id", "published_at").
		Values(entry.ID, entry.Title, entry.SourceURL, entry.DraftID, publishedAt).
		Suffix("ON CONFLICT(id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to add ledger entry: %w", err)
	}

	return nil
}

// Count returns the number of recorded identifiers.
func (s *Store) Count(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From("published_articles").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	return count, nil
}

// Clear removes all entries. Operator action only; the pipeline never
// calls this.
func (s *Store) Clear(ctx context.Context) error {
	query, args, err := sq.Delete("published_articles").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}

	return nil
}
