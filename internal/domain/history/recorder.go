package history

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recorder appends audit events. Events are never updated or deleted.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record appends one event. message may be empty; it is stored as NULL then.
func (r *Recorder) Record(ctx context.Context, userID, fileID uuid.UUID, action Action, status EventStatus, message string) error {
	event := &Event{
		UserID: userID,
		FileID: fileID,
		Action: action,
		Status: status,
	}
	if message != "" {
		event.Message = &message
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByFile returns a file's events oldest first, insertion order breaking
// created_at ties.
func (r *Recorder) ListByFile(ctx context.Context, userID, fileID uuid.UUID) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND file_id = ?", userID, fileID).
		Order("created_at asc, id asc").
		Find(&events).Error
	return events, err
}
