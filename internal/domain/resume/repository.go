package resume

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("resume data not found")

type Repository interface {
	Create(ctx context.Context, r *ResumeData) error
	GetByFileID(ctx context.Context, fileID uuid.UUID) (*ResumeData, error)
	FileIDsWithData(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, data *ResumeData) error {
	return r.db.WithContext(ctx).Create(data).Error
}

func (r *repository) GetByFileID(ctx context.Context, fileID uuid.UUID) (*ResumeData, error) {
	var data ResumeData
	err := r.db.WithContext(ctx).Where("file_id = ?", fileID).First(&data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// FileIDsWithData returns the set of the user's file ids that have a stored
// extraction result. Used to decorate file listings.
func (r *repository) FileIDsWithData(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&ResumeData{}).
		Where("user_id = ?", userID).
		Pluck("file_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
