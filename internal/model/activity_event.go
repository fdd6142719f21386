package model

import "time"

// ActivityEvent is an audit record of a note mutation, persisted
// asynchronously by the activity worker.
type ActivityEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	NoteID    uint      `gorm:"not null;index" json:"note_id"`
	Action    string    `gorm:"size:16;not null;index" json:"action"`
	NoteTitle string    `gorm:"size:128" json:"note_title"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	ActivityNoteCreated = "note_created"
	ActivityNoteDeleted = "note_deleted"
)
