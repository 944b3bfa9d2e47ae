// Package history archives simulated runs in SQLite so they can be listed and replayed later.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fjacquet/budget-sim/internal/logging"
	"fjacquet/budget-sim/internal/models"
	"fjacquet/budget-sim/internal/simerror"

	_ "modernc.org/sqlite"
)

// RunRecord is the headline of an archived run, without its months.
type RunRecord struct {
	ID             int64     `json:"id"`
	ScenarioID     string    `json:"scenarioId"`
	Title          string    `json:"title"`
	TotalMonths    int       `json:"totalMonths"`
	MonthsRun      int       `json:"monthsRun"`
	NetWorthChange float64   `json:"netWorthChange"`
	StartedAt      time.Time `json:"startedAt"`
}

// Repository stores runs in a SQLite database.
type Repository struct {
	db     *sql.DB
	logger logging.Logger
}

// NewRepository opens (creating if needed) the database at dbPath and migrates it.
func NewRepository(dbPath string, logger logging.Logger) (*Repository, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Debug("History database ready", logging.F(logging.FieldFile, dbPath))
	return &Repository{db: db, logger: logger}, nil
}

// Close releases the database.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveRun archives run with all its months and returns the new run id.
func (r *Repository) SaveRun(ctx context.Context, run models.Run) (int64, error) {
	scenarioJSON, err := json.Marshal(run.Scenario)
	if err != nil {
		return 0, fmt.Errorf("encode scenario: %w", err)
	}

	startedAt := run.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (scenario_id, title, total_months, months_run, net_worth_change, scenario_json, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Scenario.ID,
		run.Scenario.Title,
		run.Scenario.TotalMonths,
		len(run.Months),
		run.NetWorthChange(),
		string(scenarioJSON),
		startedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_months (run_id, seq, month, result_json) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare month insert: %w", err)
	}
	defer stmt.Close()

	for seq, month := range run.Months {
		resultJSON, err := json.Marshal(month)
		if err != nil {
			return 0, fmt.Errorf("encode month %d: %w", month.NewState.Month, err)
		}
		if _, err := stmt.ExecContext(ctx, id, seq, month.NewState.Month, string(resultJSON)); err != nil {
			return 0, fmt.Errorf("insert month %d: %w", month.NewState.Month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}

	r.logger.Info("Run archived",
		logging.F(logging.FieldRunID, id),
		logging.F(logging.FieldScenario, run.Scenario.ID),
		logging.F(logging.FieldCount, len(run.Months)))
	return id, nil
}

// ListRuns returns every archived run, newest first. A non-empty scenarioID filters by scenario.
func (r *Repository) ListRuns(ctx context.Context, scenarioID string) ([]RunRecord, error) {
	query := `SELECT id, scenario_id, title, total_months, months_run, net_worth_change, started_at FROM runs`
	var args []interface{}
	if scenarioID != "" {
		query += ` WHERE scenario_id = ?`
		args = append(args, scenarioID)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	records := []RunRecord{}
	for rows.Next() {
		var rec RunRecord
		var startedAt string
		if err := rows.Scan(&rec.ID, &rec.ScenarioID, &rec.Title, &rec.TotalMonths, &rec.MonthsRun, &rec.NetWorthChange, &startedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse start time of run %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

// GetRun loads an archived run with all its months.
func (r *Repository) GetRun(ctx context.Context, id int64) (models.Run, error) {
	var scenarioJSON, startedAt string
	err := r.db.QueryRowContext(ctx, `SELECT scenario_json, started_at FROM runs WHERE id = ?`, id).Scan(&scenarioJSON, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Run{}, &simerror.NotFoundError{Kind: "run", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return models.Run{}, fmt.Errorf("get run %d: %w", id, err)
	}

	run := models.Run{ID: id}
	if err := json.Unmarshal([]byte(scenarioJSON), &run.Scenario); err != nil {
		return models.Run{}, fmt.Errorf("decode scenario of run %d: %w", id, err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return models.Run{}, fmt.Errorf("parse start time of run %d: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT result_json FROM run_months WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return models.Run{}, fmt.Errorf("get months of run %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var resultJSON string
		if err := rows.Scan(&resultJSON); err != nil {
			return models.Run{}, fmt.Errorf("scan month of run %d: %w", id, err)
		}
		var month models.MonthResult
		if err := json.Unmarshal([]byte(resultJSON), &month); err != nil {
			return models.Run{}, fmt.Errorf("decode month of run %d: %w", id, err)
		}
		run.Months = append(run.Months, month)
	}
	if err := rows.Err(); err != nil {
		return models.Run{}, fmt.Errorf("iterate months of run %d: %w", id, err)
	}
	return run, nil
}

// DeleteRun removes an archived run and its months in one transaction.
func (r *Repository) DeleteRun(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete of run %d: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_months WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("delete months of run %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run %d: %w", id, err)
	}
	if n == 0 {
		return &simerror.NotFoundError{Kind: "run", ID: strconv.FormatInt(id, 10)}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete of run %d: %w", id, err)
	}
	r.logger.Debug("Run deleted", logging.F(logging.FieldRunID, id))
	return nil
}
