package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/home-inventory/internal/model"
)

// ErrTaskNotFound is returned when a maintenance task lookup fails.
var ErrTaskNotFound = errors.New("maintenance task not found")

// MaintenanceRepo provides persistence for maintenance tasks.  Due
// dates are never stored here; callers derive them from the rows on
// read.
type MaintenanceRepo struct {
	db *sql.DB
}

// NewMaintenanceRepo constructs a MaintenanceRepo with the given DB handle.
func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo {
	return &MaintenanceRepo{db: db}
}

const taskCols = `id, room_id, task_name, description, frequency, last_completed, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }, t *model.MaintenanceTask) error {
	return row.Scan(&t.ID, &t.RoomID, &t.TaskName, &t.Description,
		&t.Frequency, &t.LastCompleted, &t.CreatedAt, &t.UpdatedAt)
}

// Create inserts a new task row.  New tasks start with a NULL
// last_completed.
func (r *MaintenanceRepo) Create(ctx context.Context, t *model.MaintenanceTask) error {
	const q = `INSERT INTO maintenance (id, room_id, task_name, description, frequency, last_completed, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.RoomID, t.TaskName, t.Description, t.Frequency, t.LastCompleted, t.CreatedAt, t.UpdatedAt)
	return err
}

// GetByID retrieves a task by its ID.  Returns ErrTaskNotFound when no
// row is found.
func (r *MaintenanceRepo) GetByID(ctx context.Context, id string) (*model.MaintenanceTask, error) {
	var t model.MaintenanceTask
	err := scanTask(r.db.QueryRowContext(ctx, `SELECT `+taskCols+` FROM maintenance WHERE id = ?`, id), &t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByRoom returns a room's tasks ordered by task name.  The caller
// re-sorts by urgency after enrichment.
func (r *MaintenanceRepo) ListByRoom(ctx context.Context, roomID string) ([]model.MaintenanceTask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskCols+` FROM maintenance WHERE room_id = ? ORDER BY task_name`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MaintenanceTask
	for rows.Next() {
		var t model.MaintenanceTask
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TaskWithRoom pairs a task with the name of its room for the
// whole-home listing.
type TaskWithRoom struct {
	Task     model.MaintenanceTask
	RoomName string
}

// ListAllWithRoom returns every task across every room, joined with
// the room name.
func (r *MaintenanceRepo) ListAllWithRoom(ctx context.Context) ([]TaskWithRoom, error) {
	const q = `SELECT t.id, t.room_id, t.task_name, t.description, t.frequency,
	                  t.last_completed, t.created_at, t.updated_at, r.name
	           FROM maintenance t
	           INNER JOIN rooms r ON r.id = t.room_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TaskWithRoom
	for rows.Next() {
		var tr TaskWithRoom
		if err := rows.Scan(&tr.Task.ID, &tr.Task.RoomID, &tr.Task.TaskName, &tr.Task.Description,
			&tr.Task.Frequency, &tr.Task.LastCompleted, &tr.Task.CreatedAt, &tr.Task.UpdatedAt,
			&tr.RoomName); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes a task's name, description and frequency.  The
// completion history is left alone; completing a task goes through
// Complete.  Returns sql.ErrNoRows when the task does not exist.
func (r *MaintenanceRepo) Update(ctx context.Context, t *model.MaintenanceTask) error {
	const q = `UPDATE maintenance
	           SET task_name = ?, description = ?, frequency = ?, updated_at = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.TaskName, t.Description, t.Frequency, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Complete sets last_completed to now, shifting the computed due date
// forward one interval (or closing out a one-time task for good).
// Returns sql.ErrNoRows when the task does not exist.
func (r *MaintenanceRepo) Complete(ctx context.Context, id string, now time.Time) error {
	const q = `UPDATE maintenance SET last_completed = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, now, now, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a task row.  Returns sql.ErrNoRows when the task does
// not exist.
func (r *MaintenanceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maintenance WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
