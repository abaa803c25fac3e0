package application

import (
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
)

type TransactionView struct {
	ID          string         `json:"id"`
	PortfolioID string         `json:"portfolioId"`
	Type        string         `json:"type"`
	Amount      domain.Decimal `json:"amount"`
	Date        time.Time      `json:"date"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func toTransactionView(t *domain.Transaction) TransactionView {
	return TransactionView{
		ID:          t.ID,
		PortfolioID: t.PortfolioID,
		Type:        t.Type,
		Amount:      t.Amount,
		Date:        t.Date,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

type NotificationView struct {
	ID        string    `json:"id"`
	Type      string    `json:"typeNotification"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"isRead"`
	UserID    string    `json:"userId"`
}

func toNotificationView(n *domain.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID,
		Type:      string(n.Type),
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
		IsRead:    n.IsRead,
		UserID:    n.UserID,
	}
}

type ProfileView struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	KnowledgeLevel  string         `json:"knowledgeLevel"`
	RiskProfile     string         `json:"riskProfile"`
	IncomeMonthly   domain.Decimal `json:"incomeMonthly"`
	ExpensesMonthly domain.Decimal `json:"expensesMonthly"`
	PercentageSave  domain.Decimal `json:"percentageSave"`
	TotalDebt       domain.Decimal `json:"totalDebt"`
	SavingsTotal    domain.Decimal `json:"savingsTotal"`
	PatrimonyTotal  domain.Decimal `json:"patrimonyTotal"`
	CreatedAt       time.Time      `json:"createdAt"`
}

func toProfileView(p *domain.FinancingProfile) ProfileView {
	return ProfileView{
		ID:              p.ID,
		UserID:          p.UserID,
		KnowledgeLevel:  string(p.KnowledgeLevel),
		RiskProfile:     string(p.RiskProfile),
		IncomeMonthly:   p.IncomeMonthly,
		ExpensesMonthly: p.ExpensesMonthly,
		PercentageSave:  p.PercentageSave,
		TotalDebt:       p.TotalDebt,
		SavingsTotal:    p.SavingsTotal,
		PatrimonyTotal:  p.PatrimonyTotal,
		CreatedAt:       p.CreatedAt,
	}
}

type PortfolioView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toPortfolioView(p *domain.Portfolio) PortfolioView {
	return PortfolioView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
	}
}

type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
