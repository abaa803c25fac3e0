package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
)

// TransactionCounter reports how many transactions reference a portfolio.
type TransactionCounter interface {
	CountByPortfolio(ctx context.Context, portfolioID string) (int64, error)
}

type PortfolioService struct {
	portfolios domain.PortfolioRepository
	users      domain.UserRepository
	// deleteGuard blocks deleting portfolios that still have transactions.
	// Nil disables the check.
	deleteGuard TransactionCounter
	now         func() time.Time
}

func NewPortfolioService(portfolios domain.PortfolioRepository, users domain.UserRepository, deleteGuard TransactionCounter) *PortfolioService {
	return &PortfolioService{
		portfolios:  portfolios,
		users:       users,
		deleteGuard: deleteGuard,
		now:         time.Now,
	}
}

func (s *PortfolioService) List(ctx context.Context, pageIndex, pageSize int) (PageEnvelope[PortfolioView], error) {
	return listPage(ctx, s.portfolios, domain.KindPortfolio, pageIndex, pageSize, toPortfolioView)
}

func (s *PortfolioService) Get(ctx context.Context, id string) (*PortfolioView, error) {
	p, err := resolve(ctx, s.portfolios, domain.KindPortfolio, id)
	if err != nil {
		return nil, err
	}
	view := toPortfolioView(p)
	return &view, nil
}

func (s *PortfolioService) Create(ctx context.Context, req CreatePortfolioRequest) (*PortfolioView, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	user, err := resolve(ctx, s.users, domain.KindUser, req.UserID)
	if err != nil {
		return nil, err
	}

	p := domain.NewPortfolio(req.Name, req.Description, user.ID, s.now())
	if err := s.portfolios.Save(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	view := toPortfolioView(&p)
	return &view, nil
}

func (s *PortfolioService) Update(ctx context.Context, id string, req UpdatePortfolioRequest) (*PortfolioView, error) {
	p, err := resolve(ctx, s.portfolios, domain.KindPortfolio, id)
	if err != nil {
		return nil, err
	}

	if err := req.validate(); err != nil {
		return nil, err
	}

	if req.UserID.Set {
		user, err := resolve(ctx, s.users, domain.KindUser, req.UserID.Value)
		if err != nil {
			return nil, err
		}
		p.UserID = user.ID
	}

	req.Name.Apply(&p.Name)
	req.Description.Apply(&p.Description)

	if err := s.portfolios.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	view := toPortfolioView(p)
	return &view, nil
}

// Delete removes a portfolio. With the delete guard enabled it refuses while
// transactions still reference the portfolio.
func (s *PortfolioService) Delete(ctx context.Context, id string) error {
	if s.deleteGuard != nil {
		if _, err := resolve(ctx, s.portfolios, domain.KindPortfolio, id); err != nil {
			return err
		}

		count, err := s.deleteGuard.CountByPortfolio(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count transactions for portfolio %s: %w", id, err)
		}
		if count > 0 {
			slog.WarnContext(ctx, "Portfolio delete blocked", "portfolio_id", id, "transactions", count)
			return &domain.DependentsExistError{
				Kind:      domain.KindPortfolio,
				ID:        id,
				Dependent: domain.KindTransaction,
				Count:     count,
			}
		}
	}

	return remove(ctx, s.portfolios, domain.KindPortfolio, id)
}
