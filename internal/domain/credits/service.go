package credits

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resumeparser/internal/domain/auth"
)

var ErrInvalidAmount = errors.New("amount must be positive")

// InsufficientCreditsError reports both sides of a failed reservation so the
// caller can surface them to the user.
type InsufficientCreditsError struct {
	Required  int64
	Available int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, available %d", e.Required, e.Available)
}

// Service is the only code allowed to mutate a user's credit balance.
// Debits run inside a transaction holding a row lock on the user, so
// concurrent debits for the same user serialize instead of losing updates.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Balance returns the user's current credit balance.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var user auth.User
	err := s.db.WithContext(ctx).Select("id", "credits").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, auth.ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	return user.Credits, nil
}

// Reserve is the advisory pre-flight check before processing begins. It does
// not hold anything; Debit re-serializes at spend time.
func (s *Service) Reserve(ctx context.Context, userID uuid.UUID, cost int64) error {
	if cost <= 0 {
		return ErrInvalidAmount
	}
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return err
	}
	if balance < cost {
		return &InsufficientCreditsError{Required: cost, Available: balance}
	}
	return nil
}

// Debit decrements the balance, floored at zero, and appends a SPEND
// transaction. Called exactly once per completed file.
func (s *Service) Debit(ctx context.Context, userID uuid.UUID, cost int64) (*Transaction, error) {
	if cost <= 0 {
		return nil, ErrInvalidAmount
	}

	var txn Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		newBalance := user.Credits - cost
		if newBalance < 0 {
			newBalance = 0
		}
		if err := tx.Model(&auth.User{}).Where("id = ?", user.ID).Update("credits", newBalance).Error; err != nil {
			return err
		}

		txn = Transaction{UserID: userID, Amount: cost, Type: TransactionTypeSpend}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// Add credits the balance (seeding, plan top-ups).
func (s *Service) Add(ctx context.Context, userID uuid.UUID, amount int64) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var txn Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.Model(&auth.User{}).Where("id = ?", user.ID).Update("credits", user.Credits+amount).Error; err != nil {
			return err
		}

		txn = Transaction{UserID: userID, Amount: amount, Type: TransactionTypeAdd}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID) ([]Transaction, error) {
	var txns []Transaction
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&txns).Error
	return txns, err
}

func lockUser(tx *gorm.DB, userID uuid.UUID) (*auth.User, error) {
	var user auth.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
