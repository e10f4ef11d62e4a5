package repository // repository holds data access logic for inventory records

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/home-inventory/internal/model"
)

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo provides methods to create and retrieve rooms.  It embeds a
// database handle to perform queries and commands.
type RoomRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a new room.  ID and timestamps must already be set by
// the caller; the row is read back afterwards so the stored values are
// what the caller sees.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const qInsert = `INSERT INTO rooms (id, name, description, icon, created_at, updated_at)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, qInsert,
		room.ID, room.Name, room.Description, room.Icon, room.CreatedAt, room.UpdatedAt); err != nil {
		return err
	}

	const qSelect = `SELECT id, name, description, icon, created_at, updated_at FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, room.ID).
		Scan(&room.ID, &room.Name, &room.Description, &room.Icon, &room.CreatedAt, &room.UpdatedAt)
}

// GetByID retrieves a room by its ID.  It returns ErrRoomNotFound when
// no row is found.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	const q = `SELECT id, name, description, icon, created_at, updated_at FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&room.ID, &room.Name, &room.Description, &room.Icon, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// ListWithCounts returns all rooms ordered by name, each annotated
// with its child-record counts.  When query is non-empty the list is
// filtered to rooms whose name contains it, case-insensitively.
func (r *RoomRepo) ListWithCounts(ctx context.Context, query string) ([]*model.RoomWithCounts, error) {
	q := `SELECT r.id, r.name, r.description, r.icon, r.created_at, r.updated_at,
	             (SELECT COUNT(*) FROM manuals m WHERE m.room_id = r.id),
	             (SELECT COUNT(*) FROM appliances a WHERE a.room_id = r.id),
	             (SELECT COUNT(*) FROM maintenance t WHERE t.room_id = r.id)
	      FROM rooms r`
	args := []any{}
	if query != "" {
		q += ` WHERE LOWER(r.name) LIKE ?`
		args = append(args, "%"+strings.ToLower(query)+"%")
	}
	q += ` ORDER BY r.name`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.RoomWithCounts
	for rows.Next() {
		rc := new(model.RoomWithCounts)
		if err := rows.Scan(&rc.ID, &rc.Name, &rc.Description, &rc.Icon, &rc.CreatedAt, &rc.UpdatedAt,
			&rc.ManualsCount, &rc.AppliancesCount, &rc.MaintenanceCount); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes a room's name, description and icon.  Returns
// sql.ErrNoRows when the room does not exist.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	const q = `UPDATE rooms
	           SET name = ?, description = ?, icon = ?, updated_at = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, room.Name, room.Description, room.Icon, room.UpdatedAt, room.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a room.  Child manuals, appliances and maintenance
// tasks go with it via the cascade constraints.  Returns sql.ErrNoRows
// when the room does not exist.
func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
