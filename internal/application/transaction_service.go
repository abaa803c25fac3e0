package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
)

type TransactionService struct {
	transactions domain.TransactionRepository
	portfolios   domain.PortfolioRepository
	now          func() time.Time
}

func NewTransactionService(transactions domain.TransactionRepository, portfolios domain.PortfolioRepository) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		portfolios:   portfolios,
		now:          time.Now,
	}
}

func (s *TransactionService) List(ctx context.Context, pageIndex, pageSize int) (PageEnvelope[TransactionView], error) {
	return listPage(ctx, s.transactions, domain.KindTransaction, pageIndex, pageSize, toTransactionView)
}

func (s *TransactionService) Get(ctx context.Context, id string) (*TransactionView, error) {
	tx, err := resolve(ctx, s.transactions, domain.KindTransaction, id)
	if err != nil {
		return nil, err
	}
	view := toTransactionView(tx)
	return &view, nil
}

// Create records a transaction against an existing portfolio.
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionView, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	portfolio, err := resolve(ctx, s.portfolios, domain.KindPortfolio, req.PortfolioID)
	if err != nil {
		return nil, err
	}

	tx := domain.NewTransaction(portfolio.ID, req.Type, *req.Amount, *req.Date, req.Description, s.now())
	if err := s.transactions.Save(ctx, &tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	view := toTransactionView(&tx)
	return &view, nil
}

// Update overwrites the supplied fields only. A supplied portfolio id is
// resolved again; an omitted one keeps the current link.
func (s *TransactionService) Update(ctx context.Context, id string, req UpdateTransactionRequest) (*TransactionView, error) {
	tx, err := resolve(ctx, s.transactions, domain.KindTransaction, id)
	if err != nil {
		return nil, err
	}

	if err := req.validate(); err != nil {
		return nil, err
	}

	if req.PortfolioID.Set {
		portfolio, err := resolve(ctx, s.portfolios, domain.KindPortfolio, req.PortfolioID.Value)
		if err != nil {
			return nil, err
		}
		tx.PortfolioID = portfolio.ID
	}

	req.Type.Apply(&tx.Type)
	req.Amount.Apply(&tx.Amount)
	req.Date.Apply(&tx.Date)
	req.Description.Apply(&tx.Description)

	if err := s.transactions.Save(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	view := toTransactionView(tx)
	return &view, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := remove(ctx, s.transactions, domain.KindTransaction, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction deleted", "transaction_id", id)
	return nil
}
