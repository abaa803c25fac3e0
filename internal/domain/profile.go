package domain

import (
	"time"

	"github.com/google/uuid"
)

type RiskProfile string

const (
	RiskProfileSembrador  RiskProfile = "SEMBRADOR"
	RiskProfileExplorador RiskProfile = "EXPLORADOR"
	RiskProfileCazador    RiskProfile = "CAZADOR"
	RiskProfileSkip       RiskProfile = "SKIP"
)

var RiskProfiles = NewEnumSet("riskProfile",
	RiskProfileSembrador,
	RiskProfileExplorador,
	RiskProfileCazador,
	RiskProfileSkip,
)

func ParseRiskProfile(raw string) (RiskProfile, error) {
	return RiskProfiles.Parse(raw)
}

type KnowledgeLevel string

const (
	KnowledgeLevelBasic        KnowledgeLevel = "BASIC"
	KnowledgeLevelIntermediate KnowledgeLevel = "INTERMEDIATE"
	KnowledgeLevelAdvanced     KnowledgeLevel = "ADVANCED"
)

var KnowledgeLevels = NewEnumSet("knowledgeLevel",
	KnowledgeLevelBasic,
	KnowledgeLevelIntermediate,
	KnowledgeLevelAdvanced,
)

func ParseKnowledgeLevel(raw string) (KnowledgeLevel, error) {
	return KnowledgeLevels.Parse(raw)
}

// FinancingProfile holds a user's investor test outcome and monthly figures.
type FinancingProfile struct {
	ID              string
	UserID          string
	KnowledgeLevel  KnowledgeLevel
	RiskProfile     RiskProfile
	IncomeMonthly   Decimal
	ExpensesMonthly Decimal
	PercentageSave  Decimal
	TotalDebt       Decimal
	SavingsTotal    Decimal
	PatrimonyTotal  Decimal
	CreatedAt       time.Time
}

func NewFinancingProfile(userID string, level KnowledgeLevel, risk RiskProfile, now time.Time) FinancingProfile {
	return FinancingProfile{
		ID:              uuid.New().String(),
		UserID:          userID,
		KnowledgeLevel:  level,
		RiskProfile:     risk,
		IncomeMonthly:   Zero,
		ExpensesMonthly: Zero,
		PercentageSave:  Zero,
		TotalDebt:       Zero,
		SavingsTotal:    Zero,
		PatrimonyTotal:  Zero,
		CreatedAt:       now,
	}
}

var hundred = MustDecimal("100")

// Validate checks the business constraints on the figures.
func (p *FinancingProfile) Validate() error {
	var c Constraints
	for _, f := range []struct {
		path  string
		value Decimal
	}{
		{"incomeMonthly", p.IncomeMonthly},
		{"expensesMonthly", p.ExpensesMonthly},
		{"totalDebt", p.TotalDebt},
		{"savingsTotal", p.SavingsTotal},
		{"patrimonyTotal", p.PatrimonyTotal},
	} {
		c.Check(!f.value.IsNegative(), f.path, "must be greater than or equal to 0")
	}
	c.Check(!p.PercentageSave.IsNegative() && p.PercentageSave.Cmp(hundred) <= 0,
		"percentageSave", "must be between 0 and 100")
	return c.Err()
}
