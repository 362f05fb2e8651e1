package file

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// File represents one uploaded PDF. Status is the only field mutated after
// creation, and only by the processing pipeline; completed and failed are
// terminal.
type File struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	FileName    string    `json:"file_name" gorm:"not null"`
	FileSize    int64     `json:"file_size" gorm:"not null"`
	FileType    string    `json:"file_type" gorm:"not null;default:'application/pdf'"`
	StoragePath *string   `json:"-"`
	Status      Status    `json:"status" gorm:"type:varchar(16);not null;default:'uploaded';index"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

func (File) TableName() string { return "files" }

func (f *File) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
