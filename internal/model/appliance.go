package model

import "time"

// Appliance represents an asset record for a device kept in a room,
// such as a dishwasher or water heater.  All descriptive fields except
// the name are optional.  This struct corresponds to a row in the
// `appliances` table.
//
// Fields:
//  ID                 – primary key (UUID string).
//  RoomID             – owning room; cascade-deleted with it.
//  Name               – appliance name.
//  Brand              – manufacturer, optional.
//  ModelNumber        – model identifier, optional.
//  SerialNumber       – serial number, optional.
//  PurchaseDate       – when the appliance was bought, optional.
//  WarrantyExpiration – when the warranty runs out, optional.
//  Notes              – optional free text.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Appliance struct {
    ID                 string     `json:"id"`                  // appliances.id
    RoomID             string     `json:"room_id"`             // appliances.room_id
    Name               string     `json:"name"`                // appliances.name
    Brand              *string    `json:"brand"`               // appliances.brand (nullable)
    ModelNumber        *string    `json:"model_number"`        // appliances.model_number (nullable)
    SerialNumber       *string    `json:"serial_number"`       // appliances.serial_number (nullable)
    PurchaseDate       *time.Time `json:"purchase_date"`       // appliances.purchase_date (nullable)
    WarrantyExpiration *time.Time `json:"warranty_expiration"` // appliances.warranty_expiration (nullable)
    Notes              *string    `json:"notes"`               // appliances.notes (nullable)
    CreatedAt          time.Time  `json:"created_at"`          // appliances.created_at
    UpdatedAt          time.Time  `json:"updated_at"`          // appliances.updated_at
}

// Warranty status values describe where an appliance's warranty stands
// relative to the current time.
const (
    WarrantyNone         = "none"          // no expiration recorded
    WarrantyActive       = "active"        // expiration is more than 30 days away
    WarrantyExpiringSoon = "expiring_soon" // expiration within the next 30 days
    WarrantyExpired      = "expired"       // expiration has passed
)

// WarrantyStatus classifies the appliance's warranty against now.  An
// appliance without a recorded expiration is WarrantyNone.
func (a *Appliance) WarrantyStatus(now time.Time) string {
    if a.WarrantyExpiration == nil {
        return WarrantyNone
    }
    exp := *a.WarrantyExpiration
    if exp.Before(now) {
        return WarrantyExpired
    }
    if exp.Before(now.AddDate(0, 0, 30)) {
        return WarrantyExpiringSoon
    }
    return WarrantyActive
}
