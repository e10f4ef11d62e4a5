package model

import "time"

// Manual represents an uploaded PDF document attached to a room.  The
// document bytes live on disk inside the file store; only metadata is
// persisted.  This struct corresponds to a row in the `manuals` table.
//
// Fields:
//  ID          – primary key (UUID string).
//  RoomID      – owning room; the row is cascade-deleted with it.
//  Title       – user-facing title for the document.
//  Description – optional free text.
//  Filename    – the original name of the uploaded file, shown on download.
//  FilePath    – store-internal location of the bytes.  Never exposed to
//                clients; always re-validated against the store root
//                before any filesystem access.
//  FileSize    – size of the stored file in bytes.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Manual struct {
    ID          string    `json:"id"`          // manuals.id
    RoomID      string    `json:"room_id"`     // manuals.room_id
    Title       string    `json:"title"`       // manuals.title
    Description *string   `json:"description"` // manuals.description (nullable)
    Filename    string    `json:"filename"`    // manuals.filename
    FilePath    string    `json:"-"`           // manuals.file_path (internal)
    FileSize    int64     `json:"file_size"`   // manuals.file_size
    CreatedAt   time.Time `json:"created_at"`  // manuals.created_at
    UpdatedAt   time.Time `json:"updated_at"`  // manuals.updated_at
}
