package file

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"resumeparser/internal/domain/credits"
	"resumeparser/internal/domain/history"
	"resumeparser/internal/domain/resume"
)

// Service drives a file from upload through processing to a terminal
// status, recording a history event at every transition. Validation and
// credit errors are rejected before any row is created; once a file row
// exists, failures are recorded against it instead of being rethrown.
type Service struct {
	files   Repository
	resumes resume.Repository
	events  HistoryRecorder
	ledger  CreditLedger
	text    TextExtractor
	llm     ResumeExtractor
	store   BlobStore
	queue   *Queue
}

func NewService(
	files Repository,
	resumes resume.Repository,
	events HistoryRecorder,
	ledger CreditLedger,
	text TextExtractor,
	llm ResumeExtractor,
	store BlobStore,
	queue *Queue,
) *Service {
	return &Service{
		files:   files,
		resumes: resumes,
		events:  events,
		ledger:  ledger,
		text:    text,
		llm:     llm,
		store:   store,
		queue:   queue,
	}
}

// Upload validates the request, creates the file row and enqueues
// processing. The returned file is in status uploaded; the caller discovers
// completion by polling.
func (s *Service) Upload(ctx context.Context, userID uuid.UUID, fileName string, data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	if sniffMimeType(data) != "application/pdf" {
		return nil, ErrInvalidMimeType
	}

	// Advisory credit check; the user's existence is verified here too.
	if err := s.ledger.Reserve(ctx, userID, credits.CostPerFile); err != nil {
		return nil, err
	}

	f := &File{
		ID:       uuid.New(),
		UserID:   userID,
		FileName: fileName,
		FileSize: int64(len(data)),
		FileType: "application/pdf",
		Status:   StatusUploaded,
	}

	// A failed blob write is tolerated: the job carries the bytes.
	if locator, err := s.store.Save(f.ID.String(), fileName, data); err != nil {
		log.Printf("file.upload blob store failed file_id=%s err=%v", f.ID, err)
	} else {
		f.StoragePath = &locator
	}

	if err := s.files.Create(ctx, f); err != nil {
		return nil, err
	}
	s.record(ctx, userID, f.ID, history.ActionUpload, history.StatusSuccess, "")

	job := Job{
		UserID:      userID,
		FileID:      f.ID,
		FileName:    fileName,
		Data:        data,
		SubmittedAt: time.Now(),
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		log.Printf("file.upload enqueue failed file_id=%s err=%v", f.ID, err)
		// The row exists and nothing will ever process it, so it must reach
		// its terminal state here. The request context may already be
		// cancelled; the bookkeeping runs detached from it.
		s.fail(context.WithoutCancel(ctx), job, fmt.Errorf("failed to queue file for processing: %v", err))
		f.Status = StatusFailed
	}

	return f, nil
}

// Process runs the extraction pipeline for one job. It is the queue's
// worker function and may also be invoked synchronously in tests.
func (s *Service) Process(ctx context.Context, job Job) {
	ok, err := s.files.MarkProcessing(ctx, job.FileID)
	if err != nil {
		log.Printf("file.process mark failed file_id=%s err=%v", job.FileID, err)
		return
	}
	if !ok {
		// Another attempt owns the file or it is already terminal.
		log.Printf("file.process skipped file_id=%s", job.FileID)
		return
	}
	s.record(ctx, job.UserID, job.FileID, history.ActionProcess, history.StatusPending, "")

	text, err := s.text.ExtractText(ctx, job.Data)
	if err != nil {
		s.fail(ctx, job, err)
		return
	}
	log.Printf("file.process extracted file_id=%s chars=%d", job.FileID, len(text))

	doc, err := s.llm.ExtractResumeData(ctx, text)
	if err != nil {
		s.fail(ctx, job, err)
		return
	}

	err = s.resumes.Create(ctx, &resume.ResumeData{
		UserID: job.UserID,
		FileID: job.FileID,
		Data:   doc,
	})
	if err != nil {
		s.fail(ctx, job, err)
		return
	}

	if err := s.files.SetStatus(ctx, job.FileID, StatusCompleted); err != nil {
		log.Printf("file.process set completed failed file_id=%s err=%v", job.FileID, err)
	}

	if _, err := s.ledger.Debit(ctx, job.UserID, credits.CostPerFile); err != nil {
		log.Printf("file.process debit failed user_id=%s file_id=%s err=%v", job.UserID, job.FileID, err)
	}

	s.record(ctx, job.UserID, job.FileID, history.ActionExtract, history.StatusSuccess, "Successfully extracted resume data")
	log.Printf("file.process completed file_id=%s", job.FileID)
}

// fail moves the file to its terminal failed state with the cause recorded
// verbatim. Credits are never debited on this path.
func (s *Service) fail(ctx context.Context, job Job, cause error) {
	log.Printf("file.process failed file_id=%s err=%v", job.FileID, cause)
	if err := s.files.SetStatus(ctx, job.FileID, StatusFailed); err != nil {
		log.Printf("file.process set failed status file_id=%s err=%v", job.FileID, err)
	}
	s.record(ctx, job.UserID, job.FileID, history.ActionExtract, history.StatusFailed, cause.Error())
}

// ListFiles returns the user's files newest first plus the set of file ids
// that have extraction results.
func (s *Service) ListFiles(ctx context.Context, userID uuid.UUID) ([]*File, map[uuid.UUID]bool, error) {
	files, err := s.files.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	withData, err := s.resumes.FileIDsWithData(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return files, withData, nil
}

// GetFile returns an owned file and its resume document, or a nil document
// when extraction has not (or not successfully) run.
func (s *Service) GetFile(ctx context.Context, userID, fileID uuid.UUID) (*File, datatypes.JSON, error) {
	f, err := s.files.GetByID(ctx, fileID, userID)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.resumes.GetByFileID(ctx, fileID)
	if err == resume.ErrNotFound {
		return f, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return f, data.Data, nil
}

// History returns an owned file's audit trail, oldest first.
func (s *Service) History(ctx context.Context, userID, fileID uuid.UUID) ([]history.Event, error) {
	if _, err := s.files.GetByID(ctx, fileID, userID); err != nil {
		return nil, err
	}
	return s.events.ListByFile(ctx, userID, fileID)
}

// Credits returns the caller's balance.
func (s *Service) Credits(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.ledger.Balance(ctx, userID)
}

func (s *Service) record(ctx context.Context, userID, fileID uuid.UUID, action history.Action, status history.EventStatus, message string) {
	if err := s.events.Record(ctx, userID, fileID, action, status, message); err != nil {
		log.Printf("file.history record failed file_id=%s action=%s err=%v", fileID, action, err)
	}
}

func sniffMimeType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	mimeType := http.DetectContentType(head)
	return strings.Split(mimeType, ";")[0]
}
