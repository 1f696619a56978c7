// Package store persists streaming runs and their snapshots.
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tathienbao/quant-ta/internal/observer"
)

// Repository defines the interface for run persistence.
type Repository interface {
	// Run lifecycle
	BeginRun(ctx context.Context, symbol, source string, startedAt time.Time) (string, error)
	FinishRun(ctx context.Context, runID string, finishedAt time.Time, bars int64) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Snapshot operations
	SaveSnapshot(ctx context.Context, runID string, snap observer.Snapshot) error
	GetColumnSeries(ctx context.Context, runID, column string) ([]Point, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}

// Run is one persisted streaming session.
type Run struct {
	ID         string
	Symbol     string
	Source     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Bars       int64
}

// Point is one stored column observation.
type Point struct {
	Seq   int64
	Time  time.Time
	Value float64
	Ready bool
	Close decimal.Decimal
}
