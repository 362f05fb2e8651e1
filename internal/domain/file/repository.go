package file

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, f *File) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*File, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*File, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) (bool, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// GetByID is owner-scoped: a file that exists but belongs to another user is
// reported as not found.
func (r *repository) GetByID(ctx context.Context, id, userID uuid.UUID) (*File, error) {
	var f File
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*File, error) {
	var files []*File
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&files).Error
	return files, err
}

// MarkProcessing is the uploaded->processing compare-and-swap. A false
// return means some other attempt already owns the file or it is terminal.
func (r *repository) MarkProcessing(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&File{}).
		Where("id = ? AND status = ?", id, StatusUploaded).
		Update("status", StatusProcessing)
	return res.RowsAffected == 1, res.Error
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.db.WithContext(ctx).
		Model(&File{}).
		Where("id = ?", id).
		Update("status", status).Error
}
