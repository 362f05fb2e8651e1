package main

import (
	"context"
	"errors"
	"log"
	"time"

	"resumeparser/internal/database"
	"resumeparser/internal/domain/auth"
	"resumeparser/internal/domain/credits"
	jwtsvc "resumeparser/internal/pkg/jwt"
)

// Seeds a local database with a demo account for manual testing.
func main() {
	db, err := database.Connect("resumeparser.db")
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	svc := auth.NewService(db, jwtsvc.New("seed-only-secret", time.Hour))

	user, err := svc.Register(ctx, "Demo User", "demo@example.com", "demo-password-123")
	if errors.Is(err, auth.ErrEmailTaken) {
		// Re-running against the same database: reuse the existing account.
		result, loginErr := svc.Login(ctx, "demo@example.com", "demo-password-123")
		if loginErr != nil {
			log.Fatal(loginErr)
		}
		user = result.User
	} else if err != nil {
		log.Fatal(err)
	}

	// Top up beyond the registration grant so repeated local runs don't
	// exhaust the balance.
	ledger := credits.NewService(db)
	if _, err := ledger.Add(ctx, user.ID, 5000); err != nil {
		log.Fatal(err)
	}

	balance, err := ledger.Balance(ctx, user.ID)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("seeded user %s (%s) with %d credits", user.Email, user.ID, balance)
}
