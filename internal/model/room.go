package model

import "time"

// RoomIcons lists the icon identifiers a room may carry.  The value is
// purely presentational; "default" is used when the client does not
// choose one.
var RoomIcons = []string{
    "default", "bedroom", "bathroom", "kitchen", "living",
    "garage", "storage", "outdoor", "office",
}

// Room represents a physical room in the home.  Rooms own every other
// record type: manuals, appliances and maintenance tasks all reference
// a room and are removed with it.  This struct corresponds to a row in
// the `rooms` table.
//
// Fields:
//  ID          – primary key (UUID string).
//  Name        – room name, unique enough for humans but not enforced.
//  Description – optional free text.
//  Icon        – optional icon identifier (see RoomIcons).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
    ID          string    `json:"id"`          // rooms.id
    Name        string    `json:"name"`        // rooms.name
    Description *string   `json:"description"` // rooms.description (nullable)
    Icon        *string   `json:"icon"`        // rooms.icon (nullable)
    CreatedAt   time.Time `json:"created_at"`  // rooms.created_at
    UpdatedAt   time.Time `json:"updated_at"`  // rooms.updated_at
}

// RoomWithCounts is a room annotated with the number of child records
// of each kind.  Used by the room list view so the client can show
// per-room totals without extra queries.  Never persisted.
type RoomWithCounts struct {
    Room
    ManualsCount     int `json:"manuals_count"`
    AppliancesCount  int `json:"appliances_count"`
    MaintenanceCount int `json:"maintenance_count"`
}
