package history

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionUpload  Action = "upload"
	ActionProcess Action = "process"
	ActionExtract Action = "extract"
)

type EventStatus string

const (
	StatusPending EventStatus = "pending"
	StatusSuccess EventStatus = "success"
	StatusFailed  EventStatus = "failed"
)

// Event is one append-only audit record for a file. The integer primary key
// preserves insertion order so readers can break created_at ties.
type Event struct {
	ID        int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	FileID    uuid.UUID   `json:"file_id" gorm:"type:uuid;not null;index"`
	Action    Action      `json:"action" gorm:"type:varchar(16);not null"`
	Status    EventStatus `json:"status" gorm:"type:varchar(16);not null"`
	Message   *string     `json:"message,omitempty"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

func (Event) TableName() string { return "resume_history" }
