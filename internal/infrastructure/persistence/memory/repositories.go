package memory

import (
	"context"
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
)

type TransactionRepository struct {
	*Store[domain.Transaction]
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		Store: newStore(
			func(t *domain.Transaction) string { return t.ID },
			func(t *domain.Transaction) time.Time { return t.CreatedAt },
		),
	}
}

func (r *TransactionRepository) CountByPortfolio(ctx context.Context, portfolioID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, t := range r.records {
		if t.PortfolioID == portfolioID {
			n++
		}
	}
	return n, nil
}

func NewPortfolioRepository() *Store[domain.Portfolio] {
	return newStore(
		func(p *domain.Portfolio) string { return p.ID },
		func(p *domain.Portfolio) time.Time { return p.CreatedAt },
	)
}

func NewNotificationRepository() *Store[domain.Notification] {
	return newStore(
		func(n *domain.Notification) string { return n.ID },
		func(n *domain.Notification) time.Time { return n.CreatedAt },
	)
}

func NewProfileRepository() *Store[domain.FinancingProfile] {
	return newStore(
		func(p *domain.FinancingProfile) string { return p.ID },
		func(p *domain.FinancingProfile) time.Time { return p.CreatedAt },
	)
}

func NewUserRepository() *Store[domain.User] {
	return newStore(
		func(u *domain.User) string { return u.ID },
		func(u *domain.User) time.Time { return u.CreatedAt },
	)
}
