package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/home-inventory/internal/model"
)

// ErrManualNotFound is returned when a manual lookup fails.
var ErrManualNotFound = errors.New("manual not found")

// ManualRepo provides persistence for manual metadata.  The document
// bytes themselves live in the file store; this repo only ever sees
// the stored path.
type ManualRepo struct {
	db *sql.DB
}

// NewManualRepo constructs a ManualRepo with the given DB handle.
func NewManualRepo(db *sql.DB) *ManualRepo {
	return &ManualRepo{db: db}
}

const manualCols = `id, room_id, title, description, filename, file_path, file_size, created_at, updated_at`

func scanManual(row interface{ Scan(...any) error }, m *model.Manual) error {
	return row.Scan(&m.ID, &m.RoomID, &m.Title, &m.Description,
		&m.Filename, &m.FilePath, &m.FileSize, &m.CreatedAt, &m.UpdatedAt)
}

// Create inserts a new manual row.
func (r *ManualRepo) Create(ctx context.Context, m *model.Manual) error {
	const q = `INSERT INTO manuals (id, room_id, title, description, filename, file_path, file_size, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		m.ID, m.RoomID, m.Title, m.Description, m.Filename, m.FilePath, m.FileSize, m.CreatedAt, m.UpdatedAt)
	return err
}

// GetByID retrieves a manual by its ID.  Returns ErrManualNotFound
// when no row is found.
func (r *ManualRepo) GetByID(ctx context.Context, id string) (*model.Manual, error) {
	var m model.Manual
	err := scanManual(r.db.QueryRowContext(ctx, `SELECT `+manualCols+` FROM manuals WHERE id = ?`, id), &m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrManualNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByRoom returns a room's manuals, newest first.
func (r *ManualRepo) ListByRoom(ctx context.Context, roomID string) ([]*model.Manual, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+manualCols+` FROM manuals WHERE room_id = ? ORDER BY created_at DESC`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Manual
	for rows.Next() {
		m := new(model.Manual)
		if err := scanManual(rows, m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a manual's metadata and file columns.  Returns
// sql.ErrNoRows when the manual does not exist.
func (r *ManualRepo) Update(ctx context.Context, m *model.Manual) error {
	const q = `UPDATE manuals
	           SET title = ?, description = ?, filename = ?, file_path = ?, file_size = ?, updated_at = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		m.Title, m.Description, m.Filename, m.FilePath, m.FileSize, m.UpdatedAt, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a manual row.  Returns sql.ErrNoRows when the manual
// does not exist.
func (r *ManualRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM manuals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
