package domain

import (
	"time"

	"github.com/google/uuid"
)

// Portfolio groups transactions for a user. Its lifecycle is owned here only
// so that transactions have something to reference.
type Portfolio struct {
	ID          string
	Name        string
	Description string
	UserID      string
	CreatedAt   time.Time
}

func NewPortfolio(name, description, userID string, now time.Time) Portfolio {
	return Portfolio{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		UserID:      userID,
		CreatedAt:   now,
	}
}
