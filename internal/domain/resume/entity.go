package resume

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResumeData is the structured extraction result for exactly one file.
// The unique index on FileID enforces the 1:1 relationship; the row is
// written once when extraction succeeds and never mutated afterwards.
type ResumeData struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	FileID    uuid.UUID      `json:"file_id" gorm:"type:uuid;not null;uniqueIndex"`
	Data      datatypes.JSON `json:"data" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ResumeData) TableName() string { return "resume_data" }

func (r *ResumeData) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
