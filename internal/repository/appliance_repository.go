package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/home-inventory/internal/model"
)

// ErrApplianceNotFound is returned when an appliance lookup fails.
var ErrApplianceNotFound = errors.New("appliance not found")

// ApplianceRepo provides persistence for appliance records.
type ApplianceRepo struct {
	db *sql.DB
}

// NewApplianceRepo constructs an ApplianceRepo with the given DB handle.
func NewApplianceRepo(db *sql.DB) *ApplianceRepo {
	return &ApplianceRepo{db: db}
}

const applianceCols = `id, room_id, name, brand, model_number, serial_number,
	purchase_date, warranty_expiration, notes, created_at, updated_at`

func scanAppliance(row interface{ Scan(...any) error }, a *model.Appliance) error {
	return row.Scan(&a.ID, &a.RoomID, &a.Name, &a.Brand, &a.ModelNumber, &a.SerialNumber,
		&a.PurchaseDate, &a.WarrantyExpiration, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
}

// Create inserts a new appliance row.
func (r *ApplianceRepo) Create(ctx context.Context, a *model.Appliance) error {
	const q = `INSERT INTO appliances (id, room_id, name, brand, model_number, serial_number,
	               purchase_date, warranty_expiration, notes, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.RoomID, a.Name, a.Brand, a.ModelNumber, a.SerialNumber,
		a.PurchaseDate, a.WarrantyExpiration, a.Notes, a.CreatedAt, a.UpdatedAt)
	return err
}

// GetByID retrieves an appliance by its ID.  Returns
// ErrApplianceNotFound when no row is found.
func (r *ApplianceRepo) GetByID(ctx context.Context, id string) (*model.Appliance, error) {
	var a model.Appliance
	err := scanAppliance(r.db.QueryRowContext(ctx, `SELECT `+applianceCols+` FROM appliances WHERE id = ?`, id), &a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApplianceNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByRoom returns a room's appliances ordered by name.
func (r *ApplianceRepo) ListByRoom(ctx context.Context, roomID string) ([]*model.Appliance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applianceCols+` FROM appliances WHERE room_id = ? ORDER BY name`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Appliance
	for rows.Next() {
		a := new(model.Appliance)
		if err := scanAppliance(rows, a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites every editable appliance field.  Returns
// sql.ErrNoRows when the appliance does not exist.
func (r *ApplianceRepo) Update(ctx context.Context, a *model.Appliance) error {
	const q = `UPDATE appliances
	           SET name = ?, brand = ?, model_number = ?, serial_number = ?,
	               purchase_date = ?, warranty_expiration = ?, notes = ?, updated_at = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, a.Brand, a.ModelNumber, a.SerialNumber,
		a.PurchaseDate, a.WarrantyExpiration, a.Notes, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an appliance row.  Returns sql.ErrNoRows when the
// appliance does not exist.
func (r *ApplianceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appliances WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
