package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a financial movement recorded against exactly one portfolio.
// Type, Amount and Date are stored as given.
type Transaction struct {
	ID          string
	PortfolioID string
	Type        string
	Amount      Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

func NewTransaction(portfolioID, txType string, amount Decimal, date time.Time, description string, now time.Time) Transaction {
	return Transaction{
		ID:          uuid.New().String(),
		PortfolioID: portfolioID,
		Type:        txType,
		Amount:      amount,
		Date:        date,
		Description: description,
		CreatedAt:   now,
	}
}
