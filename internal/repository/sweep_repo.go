package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"greenhouse_sim/internal/models"

	"github.com/google/uuid"
)

type SweepRunSQLite struct {
	db *sql.DB
}

func NewSweepRunSQLite(db *sql.DB) *SweepRunSQLite { return &SweepRunSQLite{db: db} }

var _ SweepRuns = (*SweepRunSQLite)(nil)

const (
	insertSweepRunSQL = `
		INSERT INTO sweep_runs (id, owner_id, variable, created_at, best_index, best_value, best_profit, failed, points_json, request_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectSweepRunColumns = `SELECT id, owner_id, variable, created_at, best_index, failed, points_json, request_json FROM sweep_runs`
)

// Save inserts a run. Empty ID and zero CreatedAt are filled in; the ID is returned.
func (r *SweepRunSQLite) Save(ctx context.Context, run models.SweepRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	points, err := json.Marshal(run.Result.Points)
	if err != nil {
		return "", fmt.Errorf("encode sweep points: %w", err)
	}
	var request *string
	if len(run.Request) > 0 {
		s := string(run.Request)
		request = &s
	}
	var bestValue, bestProfit *float64
	if run.Result.Best != nil {
		bestValue = &run.Result.Best.Value
		bestProfit = &run.Result.Best.Profit
	}

	_, err = r.db.ExecContext(ctx, insertSweepRunSQL,
		run.ID,
		run.OwnerID,
		string(run.Variable),
		run.CreatedAt.UTC().Format(sqliteTimeLayout),
		run.Result.BestIndex,
		bestValue,
		bestProfit,
		run.Result.Failed,
		string(points),
		request,
	)
	if err != nil {
		return "", fmt.Errorf("insert sweep run %s: %w", run.ID, err)
	}
	return run.ID, nil
}

// Get loads one run by id, or ErrNotFound.
func (r *SweepRunSQLite) Get(ctx context.Context, id string) (models.SweepRun, error) {
	row := r.db.QueryRowContext(ctx, selectSweepRunColumns+" WHERE id = ?", id)
	run, err := scanSweepRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SweepRun{}, ErrNotFound
	}
	return run, err
}

// List returns runs of an owner filtered by [from, to] and variable, newest first.
func (r *SweepRunSQLite) List(ctx context.Context, ownerID int, from, to time.Time, variable string) ([]models.SweepRun, error) {
	conds := []string{"owner_id = ?"}
	args := []any{ownerID}

	if !from.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimeLayout))
	}
	if variable = strings.ToLower(strings.TrimSpace(variable)); variable != "" {
		conds = append(conds, "variable = ?")
		args = append(args, variable)
	}

	q := selectSweepRunColumns + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.SweepRun, 0, 16)
	for rows.Next() {
		run, err := scanSweepRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSweepRun(row rowScanner) (models.SweepRun, error) {
	var (
		run      models.SweepRun
		variable string
		created  sqliteTime
		points   string
		request  sql.NullString
	)
	if err := row.Scan(&run.ID, &run.OwnerID, &variable, &created, &run.Result.BestIndex, &run.Result.Failed, &points, &request); err != nil {
		return models.SweepRun{}, err
	}
	run.Variable = models.SweepVariable(variable)
	run.Result.Variable = run.Variable
	run.CreatedAt = time.Time(created)

	if err := json.Unmarshal([]byte(points), &run.Result.Points); err != nil {
		return models.SweepRun{}, fmt.Errorf("decode sweep points of %s: %w", run.ID, err)
	}
	for i := range run.Result.Points {
		if run.Result.Points[i].Index == run.Result.BestIndex && run.Result.BestIndex >= 0 {
			best := run.Result.Points[i]
			run.Result.Best = &best
			break
		}
	}
	if request.Valid && request.String != "" {
		run.Request = json.RawMessage(request.String)
	}
	return run, nil
}

// sqliteTime scans TIMESTAMP columns that the driver may return as time.Time or text.
type sqliteTime time.Time

func (t *sqliteTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = sqliteTime(v.UTC())
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		*t = sqliteTime(time.Time{})
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *sqliteTime) parse(s string) error {
	for _, layout := range []string{sqliteTimeLayout, time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = sqliteTime(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q", s)
}
