package model

import "time"

// Recurrence frequencies a maintenance task may carry.  A one-time
// task is due immediately when created and never recurs after it has
// been completed; the other frequencies repeat on calendar intervals.
const (
    FrequencyOneTime = "one-time"
    FrequencyWeekly  = "weekly"
    FrequencyMonthly = "monthly"
    FrequencyYearly  = "yearly"
)

// MaintenanceFrequencies lists every valid frequency value.
var MaintenanceFrequencies = []string{
    FrequencyOneTime, FrequencyWeekly, FrequencyMonthly, FrequencyYearly,
}

// MaintenanceTask represents a recurring (or one-time) chore attached
// to a room.  This struct corresponds to a row in the `maintenance`
// table.  The task's due date is never stored; it is derived from the
// frequency and completion history on every read.
//
// Fields:
//  ID            – primary key (UUID string).
//  RoomID        – owning room; cascade-deleted with it.
//  TaskName      – short name of the chore.
//  Description   – optional free text.
//  Frequency     – one of the frequency constants above.
//  LastCompleted – when the task was last marked done (nil if never).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type MaintenanceTask struct {
    ID            string     `json:"id"`             // maintenance.id
    RoomID        string     `json:"room_id"`        // maintenance.room_id
    TaskName      string     `json:"task_name"`      // maintenance.task_name
    Description   *string    `json:"description"`    // maintenance.description (nullable)
    Frequency     string     `json:"frequency"`      // maintenance.frequency
    LastCompleted *time.Time `json:"last_completed"` // maintenance.last_completed (nullable)
    CreatedAt     time.Time  `json:"created_at"`     // maintenance.created_at
    UpdatedAt     time.Time  `json:"updated_at"`     // maintenance.updated_at
}

// Completed reports whether the task has reached its terminal state.
// Only one-time tasks complete; recurring tasks always have a next
// occurrence.  The check reads LastCompleted directly rather than
// inferring completion from a missing due date.
func (t *MaintenanceTask) Completed() bool {
    return t.Frequency == FrequencyOneTime && t.LastCompleted != nil
}

// EnrichedTask is a MaintenanceTask annotated with its computed due
// date and overdue flag.  Derived on every read, never persisted, so
// the two fields cannot go stale.  RoomName is filled only by the
// all-rooms listing.
type EnrichedTask struct {
    MaintenanceTask
    DueDate   *time.Time `json:"due_date"`
    IsOverdue bool       `json:"is_overdue"`
    RoomName  string     `json:"room_name,omitempty"`
}
