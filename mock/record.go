package mock

import (
	"context"

	"github.com/fwojciec/texdex"
)

var (
	_ texdex.RecordService = (*RecordService)(nil)
	_ texdex.RecordBatch   = (*RecordBatch)(nil)
)

// RecordService is a mock implementation of texdex.RecordService.
type RecordService struct {
	InsertRecordIfAbsentFn func(ctx context.Context, r *texdex.Record) (bool, error)
	BeginBatchFn           func(ctx context.Context) (texdex.RecordBatch, error)
	ListRecordsFn          func(ctx context.Context, limit int) ([]*texdex.Record, error)
	SearchRecordsFn        func(ctx context.Context, term string, limit int) ([]*texdex.Record, error)
	CountRecordsFn         func(ctx context.Context) (int, error)
}

func (s *RecordService) InsertRecordIfAbsent(ctx context.Context, r *texdex.Record) (bool, error) {
	return s.InsertRecordIfAbsentFn(ctx, r)
}

func (s *RecordService) BeginBatch(ctx context.Context) (texdex.RecordBatch, error) {
	return s.BeginBatchFn(ctx)
}

func (s *RecordService) ListRecords(ctx context.Context, limit int) ([]*texdex.Record, error) {
	return s.ListRecordsFn(ctx, limit)
}

func (s *RecordService) SearchRecords(ctx context.Context, term string, limit int) ([]*texdex.Record, error) {
	return s.SearchRecordsFn(ctx, term, limit)
}

func (s *RecordService) CountRecords(ctx context.Context) (int, error) {
	return s.CountRecordsFn(ctx)
}

// RecordBatch is a mock implementation of texdex.RecordBatch.
type RecordBatch struct {
	InsertRecordIfAbsentFn func(ctx context.Context, r *texdex.Record) (bool, error)
	CommitFn               func() error
	RollbackFn             func() error
}

func (b *RecordBatch) InsertRecordIfAbsent(ctx context.Context, r *texdex.Record) (bool, error) {
	return b.InsertRecordIfAbsentFn(ctx, r)
}

func (b *RecordBatch) Commit() error {
	return b.CommitFn()
}

func (b *RecordBatch) Rollback() error {
	return b.RollbackFn()
}
