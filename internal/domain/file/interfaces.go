package file

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"resumeparser/internal/domain/credits"
	"resumeparser/internal/domain/history"
)

// TextExtractor converts PDF bytes into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// ResumeExtractor converts plain text into the schema-conforming JSON
// document.
type ResumeExtractor interface {
	ExtractResumeData(ctx context.Context, text string) (datatypes.JSON, error)
}

// CreditLedger gates and accounts each processing attempt.
type CreditLedger interface {
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
	Reserve(ctx context.Context, userID uuid.UUID, cost int64) error
	Debit(ctx context.Context, userID uuid.UUID, cost int64) (*credits.Transaction, error)
}

// HistoryRecorder appends the audit trail. Recording failures never abort
// the pipeline.
type HistoryRecorder interface {
	Record(ctx context.Context, userID, fileID uuid.UUID, action history.Action, status history.EventStatus, message string) error
	ListByFile(ctx context.Context, userID, fileID uuid.UUID) ([]history.Event, error)
}

// BlobStore keeps a copy of the raw upload and returns its locator.
type BlobStore interface {
	Save(fileID, originalName string, data []byte) (string, error)
}
