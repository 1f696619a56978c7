package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tathienbao/quant-ta/internal/observer"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (or creates) the database at path.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{db: db}

	// Run migrations
	if err := repo.Migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return repo, nil
}

// Migrate runs database migrations.
func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			symbol TEXT NOT NULL,
			source TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME,
			bars INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol ON runs(symbol)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			timestamp DATETIME NOT NULL,
			column_name TEXT NOT NULL,
			value REAL NOT NULL,
			ready INTEGER NOT NULL DEFAULT 0,
			close TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_run_seq ON snapshots(run_id, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_run_column ON snapshots(run_id, column_name)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

// BeginRun inserts a new run and returns its generated ID.
func (r *SQLiteRepository) BeginRun(ctx context.Context, symbol, source string, startedAt time.Time) (string, error) {
	id := uuid.New().String()
	query := `INSERT INTO runs (id, symbol, source, started_at) VALUES (?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, id, symbol, source, startedAt); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	return id, nil
}

// FinishRun marks a run as finished.
func (r *SQLiteRepository) FinishRun(ctx context.Context, runID string, finishedAt time.Time, bars int64) error {
	query := `UPDATE runs SET finished_at = ?, bars = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, finishedAt, bars, runID); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	return nil
}

// GetRun returns a run by ID, or nil if it does not exist.
func (r *SQLiteRepository) GetRun(ctx context.Context, runID string) (*Run, error) {
	query := `SELECT id, symbol, source, started_at, finished_at, bars FROM runs WHERE id = ?`

	var run Run
	var finishedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, runID).Scan(
		&run.ID,
		&run.Symbol,
		&run.Source,
		&run.StartedAt,
		&finishedAt,
		&run.Bars,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}

	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, symbol, source, started_at, finished_at, bars
		FROM runs ORDER BY started_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var finishedAt sql.NullTime

		if err := rows.Scan(&run.ID, &run.Symbol, &run.Source, &run.StartedAt, &finishedAt, &run.Bars); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		if finishedAt.Valid {
			run.FinishedAt = &finishedAt.Time
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// SaveSnapshot persists every column value of one snapshot.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, runID string, snap observer.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO snapshots (run_id, seq, timestamp, column_name, value, ready, close)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, v := range snap.Values {
		if _, err := stmt.ExecContext(ctx,
			runID,
			snap.Seq,
			snap.Time,
			v.Column,
			v.Value,
			boolToInt(v.Ready),
			snap.Close.String(),
		); err != nil {
			return fmt.Errorf("insert snapshot value: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	return nil
}

// GetColumnSeries returns the stored values for one column, ordered by seq.
func (r *SQLiteRepository) GetColumnSeries(ctx context.Context, runID, column string) ([]Point, error) {
	query := `SELECT seq, timestamp, value, ready, close
		FROM snapshots WHERE run_id = ? AND column_name = ? ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, runID, column)
	if err != nil {
		return nil, fmt.Errorf("query column series: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []Point
	for rows.Next() {
		var p Point
		var ready int
		var closePx string

		if err := rows.Scan(&p.Seq, &p.Time, &p.Value, &ready, &closePx); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		p.Ready = ready == 1
		p.Close, _ = decimal.NewFromString(closePx)

		points = append(points, p)
	}

	return points, rows.Err()
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
