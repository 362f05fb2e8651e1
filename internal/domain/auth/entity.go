package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanType string

const (
	PlanFree PlanType = "FREE"
	PlanPro  PlanType = "PRO"
)

// StartingCredits is granted once, at registration.
const StartingCredits int64 = 1000

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Credits      int64     `gorm:"not null;default:1000" json:"credits"`
	PlanType     PlanType  `gorm:"type:varchar(16);not null;default:'FREE'" json:"planType"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
