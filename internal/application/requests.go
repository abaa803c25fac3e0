package application

import (
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
)

// Create requests carry binding tags for the HTTP layer. The services repeat the
// required-field and length checks in validate so that callers outside HTTP, like
// the transaction import, and partial updates get the same guarantees.

// Column widths of the SQL stores.
const (
	maxNameLength        = 120
	maxEmailLength       = 255
	maxDescriptionLength = 500
	maxTypeLength        = 64
	maxMessageLength     = 1000
)

type CreateTransactionRequest struct {
	PortfolioID string          `json:"portfolioId" binding:"required"`
	Type        string          `json:"type" binding:"required,max=64"`
	Amount      *domain.Decimal `json:"amount" binding:"required"`
	Date        *time.Time      `json:"date" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

func (r CreateTransactionRequest) validate() error {
	var c domain.Constraints
	c.Check(r.PortfolioID != "", "portfolioId", "must not be empty")
	c.Check(r.Type != "", "type", "must not be empty")
	c.MaxLength(r.Type, maxTypeLength, "type")
	c.Check(r.Amount != nil, "amount", "must not be null")
	c.Check(r.Date != nil, "date", "must not be null")
	c.MaxLength(r.Description, maxDescriptionLength, "description")
	return c.Err()
}

type UpdateTransactionRequest struct {
	PortfolioID domain.Optional[string]         `json:"portfolioId"`
	Type        domain.Optional[string]         `json:"type"`
	Amount      domain.Optional[domain.Decimal] `json:"amount"`
	Date        domain.Optional[time.Time]      `json:"date"`
	Description domain.Optional[string]         `json:"description"`
}

func (r UpdateTransactionRequest) validate() error {
	var c domain.Constraints
	c.Check(!r.Type.Set || r.Type.Value != "", "type", "must not be empty")
	c.MaxLength(r.Type.Value, maxTypeLength, "type")
	c.MaxLength(r.Description.Value, maxDescriptionLength, "description")
	return c.Err()
}

type CreateNotificationRequest struct {
	Type    string `json:"typeNotification" binding:"required"`
	Message string `json:"message" binding:"required,max=1000"`
	IsRead  bool   `json:"isRead"`
	UserID  string `json:"userId" binding:"required"`
}

func (r CreateNotificationRequest) validate() error {
	var c domain.Constraints
	c.Check(r.Message != "", "message", "must not be empty")
	c.MaxLength(r.Message, maxMessageLength, "message")
	c.Check(r.UserID != "", "userId", "must not be empty")
	return c.Err()
}

type UpdateNotificationRequest struct {
	Type    domain.Optional[string] `json:"typeNotification"`
	Message domain.Optional[string] `json:"message"`
	IsRead  domain.Optional[bool]   `json:"isRead"`
	UserID  domain.Optional[string] `json:"userId"`
}

func (r UpdateNotificationRequest) validate() error {
	var c domain.Constraints
	c.Check(!r.Message.Set || r.Message.Value != "", "message", "must not be empty")
	c.MaxLength(r.Message.Value, maxMessageLength, "message")
	return c.Err()
}

type CreateProfileRequest struct {
	UserID          string          `json:"userId" binding:"required"`
	KnowledgeLevel  string          `json:"knowledgeLevel" binding:"required"`
	RiskProfile     string          `json:"riskProfile" binding:"required"`
	IncomeMonthly   *domain.Decimal `json:"incomeMonthly"`
	ExpensesMonthly *domain.Decimal `json:"expensesMonthly"`
	PercentageSave  *domain.Decimal `json:"percentageSave"`
	TotalDebt       *domain.Decimal `json:"totalDebt"`
	SavingsTotal    *domain.Decimal `json:"savingsTotal"`
	PatrimonyTotal  *domain.Decimal `json:"patrimonyTotal"`
}

func (r CreateProfileRequest) validate() error {
	var c domain.Constraints
	c.Check(r.UserID != "", "userId", "must not be empty")
	return c.Err()
}

type UpdateProfileRequest struct {
	UserID          domain.Optional[string]         `json:"userId"`
	KnowledgeLevel  domain.Optional[string]         `json:"knowledgeLevel"`
	RiskProfile     domain.Optional[string]         `json:"riskProfile"`
	IncomeMonthly   domain.Optional[domain.Decimal] `json:"incomeMonthly"`
	ExpensesMonthly domain.Optional[domain.Decimal] `json:"expensesMonthly"`
	PercentageSave  domain.Optional[domain.Decimal] `json:"percentageSave"`
	TotalDebt       domain.Optional[domain.Decimal] `json:"totalDebt"`
	SavingsTotal    domain.Optional[domain.Decimal] `json:"savingsTotal"`
	PatrimonyTotal  domain.Optional[domain.Decimal] `json:"patrimonyTotal"`
}

type CreatePortfolioRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description" binding:"max=500"`
	UserID      string `json:"userId" binding:"required"`
}

func (r CreatePortfolioRequest) validate() error {
	var c domain.Constraints
	c.Check(r.Name != "", "name", "must not be empty")
	c.MaxLength(r.Name, maxNameLength, "name")
	c.MaxLength(r.Description, maxDescriptionLength, "description")
	c.Check(r.UserID != "", "userId", "must not be empty")
	return c.Err()
}

type UpdatePortfolioRequest struct {
	Name        domain.Optional[string] `json:"name"`
	Description domain.Optional[string] `json:"description"`
	UserID      domain.Optional[string] `json:"userId"`
}

func (r UpdatePortfolioRequest) validate() error {
	var c domain.Constraints
	c.Check(!r.Name.Set || r.Name.Value != "", "name", "must not be empty")
	c.MaxLength(r.Name.Value, maxNameLength, "name")
	c.MaxLength(r.Description.Value, maxDescriptionLength, "description")
	return c.Err()
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Email string `json:"email" binding:"required,email,max=255"`
}

func (r CreateUserRequest) validate() error {
	var c domain.Constraints
	c.Check(r.Name != "", "name", "must not be empty")
	c.MaxLength(r.Name, maxNameLength, "name")
	c.Check(r.Email != "", "email", "must not be empty")
	c.MaxLength(r.Email, maxEmailLength, "email")
	return c.Err()
}
