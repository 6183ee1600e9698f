package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/texdex"
)

// Compile-time interface verification.
var (
	_ texdex.RecordService = (*RecordService)(nil)
	_ texdex.RecordBatch   = (*RecordBatch)(nil)
)

// RecordService implements texdex.RecordService using SQLite.
type RecordService struct {
	db            *DB
	caseSensitive bool
}

// Option configures a RecordService.
type Option func(*RecordService)

// WithCaseSensitive selects case-sensitive title matching for SearchRecords.
// The default is case-insensitive matching with ASCII case folding.
func WithCaseSensitive(v bool) Option {
	return func(s *RecordService) {
		s.caseSensitive = v
	}
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB, opts ...Option) *RecordService {
	s := &RecordService{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// execer is implemented by both *DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InsertRecordIfAbsent stores the record unless its URL is already present.
func (s *RecordService) InsertRecordIfAbsent(ctx context.Context, r *texdex.Record) (bool, error) {
	return insertRecordIfAbsent(ctx, s.db, r)
}

func insertRecordIfAbsent(ctx context.Context, e execer, r *texdex.Record) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}

	result, err := e.ExecContext(ctx, `
		INSERT INTO records (title, url, source)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO NOTHING
	`, r.Title, r.URL, r.Source)
	if err != nil {
		return false, texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to insert record")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to insert record")
	}
	if n == 0 {
		return false, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to read record ID")
	}
	r.ID = id

	return true, nil
}

// BeginBatch starts a transaction for a group of insertions.
func (s *RecordService) BeginBatch(ctx context.Context) (texdex.RecordBatch, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to begin batch")
	}
	return &RecordBatch{tx: tx}, nil
}

// ListRecords returns up to limit records ordered by ID.
// A non-positive limit returns all records.
func (s *RecordService) ListRecords(ctx context.Context, limit int) ([]*texdex.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, url, source FROM records ORDER BY id ASC")
	appendPagination(&query, &args, limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to list records")
	}
	return scanRecords(rows)
}

// SearchRecords returns up to limit records whose title contains term.
// By default LIKE folds ASCII letters only; non-ASCII letters match by exact case.
func (s *RecordService) SearchRecords(ctx context.Context, term string, limit int) ([]*texdex.Record, error) {
	if term == "" {
		return nil, texdex.Errorf(texdex.EINVALID, "search term required")
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, url, source FROM records")
	if s.caseSensitive {
		query.WriteString(" WHERE instr(title, ?) > 0")
		args = append(args, term)
	} else {
		query.WriteString(` WHERE title LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(term))
	}
	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to search records")
	}
	return scanRecords(rows)
}

// CountRecords returns the total number of records.
func (s *RecordService) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to count records")
	}
	return n, nil
}

// RecordBatch implements texdex.RecordBatch on a SQLite transaction.
type RecordBatch struct {
	tx *sql.Tx
}

// InsertRecordIfAbsent stores the record within the batch unless its URL is already present.
func (b *RecordBatch) InsertRecordIfAbsent(ctx context.Context, r *texdex.Record) (bool, error) {
	return insertRecordIfAbsent(ctx, b.tx, r)
}

// Commit makes the batch's insertions permanent.
func (b *RecordBatch) Commit() error {
	if err := b.tx.Commit(); err != nil {
		return texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to commit batch")
	}
	return nil
}

// Rollback discards the batch's insertions. Rolling back a finished batch is a no-op.
func (b *RecordBatch) Rollback() error {
	if err := b.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to roll back batch")
	}
	return nil
}
