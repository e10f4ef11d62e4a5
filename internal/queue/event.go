// Package queue defines message payloads exchanged over the message broker.
package queue

// RecordChangedEvent is published after every successful mutation of an
// inventory record.  It names the entity and action, and carries the
// list of cached views the mutation invalidated so consumers on other
// replicas can drop the same views without querying the database.
type RecordChangedEvent struct {
    Entity     string   `json:"entity"`            // rooms | manuals | appliances | maintenance
    Action     string   `json:"action"`            // created | updated | completed | deleted
    ID         string   `json:"id"`                // record id
    RoomID     string   `json:"room_id,omitempty"` // owning room (empty for room events)
    Views      []string `json:"views"`             // cache views invalidated by this change
    OccurredAt string   `json:"occurred_at"`       // RFC 3339 UTC timestamp
}
