package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmanzanog/finrecords/internal/domain"
)

// TransactionRepository persists transactions in the transactions table.
type TransactionRepository struct {
	*table[domain.Transaction]
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{table: &table[domain.Transaction]{
		db:      db,
		name:    "transactions",
		columns: []string{"id", "portfolio_id", "tx_type", "amount", "tx_date", "description", "created_at"},
		values: func(t *domain.Transaction) []any {
			return []any{t.ID, t.PortfolioID, t.Type, t.Amount, t.Date, t.Description, t.CreatedAt}
		},
		scan: func(row rowScanner) (*domain.Transaction, error) {
			var t domain.Transaction
			var description sql.NullString
			if err := row.Scan(&t.ID, &t.PortfolioID, &t.Type, &t.Amount, &t.Date, &description, &t.CreatedAt); err != nil {
				return nil, err
			}
			t.Description = description.String
			return &t, nil
		},
	}}
}

func (r *TransactionRepository) CountByPortfolio(ctx context.Context, portfolioID string) (int64, error) {
	query := r.db.Rebind("SELECT COUNT(*) FROM transactions WHERE portfolio_id = $1")

	var n int64
	if err := r.db.QueryRowContext(ctx, query, portfolioID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return n, nil
}

func NewPortfolioRepository(db *DB) domain.PortfolioRepository {
	return &table[domain.Portfolio]{
		db:      db,
		name:    "portfolios",
		columns: []string{"id", "name", "description", "user_id", "created_at"},
		values: func(p *domain.Portfolio) []any {
			return []any{p.ID, p.Name, p.Description, p.UserID, p.CreatedAt}
		},
		scan: func(row rowScanner) (*domain.Portfolio, error) {
			var p domain.Portfolio
			var description sql.NullString
			if err := row.Scan(&p.ID, &p.Name, &description, &p.UserID, &p.CreatedAt); err != nil {
				return nil, err
			}
			p.Description = description.String
			return &p, nil
		},
	}
}

func NewNotificationRepository(db *DB) domain.NotificationRepository {
	return &table[domain.Notification]{
		db:      db,
		name:    "notifications",
		columns: []string{"id", "notification_type", "message", "is_read", "user_id", "created_at"},
		values: func(n *domain.Notification) []any {
			return []any{n.ID, string(n.Type), n.Message, flag(n.IsRead), n.UserID, n.CreatedAt}
		},
		scan: func(row rowScanner) (*domain.Notification, error) {
			var n domain.Notification
			var notificationType string
			var isRead flag
			if err := row.Scan(&n.ID, &notificationType, &n.Message, &isRead, &n.UserID, &n.CreatedAt); err != nil {
				return nil, err
			}
			n.Type = domain.NotificationType(notificationType)
			n.IsRead = bool(isRead)
			return &n, nil
		},
	}
}

func NewProfileRepository(db *DB) domain.ProfileRepository {
	return &table[domain.FinancingProfile]{
		db:   db,
		name: "financing_profiles",
		columns: []string{
			"id", "user_id", "knowledge_level", "risk_profile",
			"income_monthly", "expenses_monthly", "percentage_save",
			"total_debt", "savings_total", "patrimony_total", "created_at",
		},
		values: func(p *domain.FinancingProfile) []any {
			return []any{
				p.ID, p.UserID, string(p.KnowledgeLevel), string(p.RiskProfile),
				p.IncomeMonthly, p.ExpensesMonthly, p.PercentageSave,
				p.TotalDebt, p.SavingsTotal, p.PatrimonyTotal, p.CreatedAt,
			}
		},
		scan: func(row rowScanner) (*domain.FinancingProfile, error) {
			var p domain.FinancingProfile
			var level, risk string
			err := row.Scan(
				&p.ID, &p.UserID, &level, &risk,
				&p.IncomeMonthly, &p.ExpensesMonthly, &p.PercentageSave,
				&p.TotalDebt, &p.SavingsTotal, &p.PatrimonyTotal, &p.CreatedAt,
			)
			if err != nil {
				return nil, err
			}
			p.KnowledgeLevel = domain.KnowledgeLevel(level)
			p.RiskProfile = domain.RiskProfile(risk)
			return &p, nil
		},
	}
}

func NewUserRepository(db *DB) domain.UserRepository {
	return &table[domain.User]{
		db:      db,
		name:    "users",
		columns: []string{"id", "name", "email", "created_at"},
		values: func(u *domain.User) []any {
			return []any{u.ID, u.Name, u.Email, u.CreatedAt}
		},
		scan: func(row rowScanner) (*domain.User, error) {
			var u domain.User
			if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
				return nil, err
			}
			return &u, nil
		},
	}
}
