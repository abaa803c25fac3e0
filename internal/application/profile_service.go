package application

import (
	"context"
	"fmt"
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
)

// ProfileService manages financing profiles, the outcome of a user's investor
// test together with their monthly figures.
type ProfileService struct {
	profiles domain.ProfileRepository
	users    domain.UserRepository
	now      func() time.Time
}

func NewProfileService(profiles domain.ProfileRepository, users domain.UserRepository) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		now:      time.Now,
	}
}

func (s *ProfileService) List(ctx context.Context, pageIndex, pageSize int) (PageEnvelope[ProfileView], error) {
	return listPage(ctx, s.profiles, domain.KindFinancingProfile, pageIndex, pageSize, toProfileView)
}

func (s *ProfileService) Get(ctx context.Context, id string) (*ProfileView, error) {
	p, err := resolve(ctx, s.profiles, domain.KindFinancingProfile, id)
	if err != nil {
		return nil, err
	}
	view := toProfileView(p)
	return &view, nil
}

func (s *ProfileService) Create(ctx context.Context, req CreateProfileRequest) (*ProfileView, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	level, err := domain.ParseKnowledgeLevel(req.KnowledgeLevel)
	if err != nil {
		return nil, err
	}
	risk, err := domain.ParseRiskProfile(req.RiskProfile)
	if err != nil {
		return nil, err
	}

	user, err := resolve(ctx, s.users, domain.KindUser, req.UserID)
	if err != nil {
		return nil, err
	}

	p := domain.NewFinancingProfile(user.ID, level, risk, s.now())
	for _, f := range []struct {
		src *domain.Decimal
		dst *domain.Decimal
	}{
		{req.IncomeMonthly, &p.IncomeMonthly},
		{req.ExpensesMonthly, &p.ExpensesMonthly},
		{req.PercentageSave, &p.PercentageSave},
		{req.TotalDebt, &p.TotalDebt},
		{req.SavingsTotal, &p.SavingsTotal},
		{req.PatrimonyTotal, &p.PatrimonyTotal},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.profiles.Save(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to save financing profile: %w", err)
	}

	view := toProfileView(&p)
	return &view, nil
}

func (s *ProfileService) Update(ctx context.Context, id string, req UpdateProfileRequest) (*ProfileView, error) {
	p, err := resolve(ctx, s.profiles, domain.KindFinancingProfile, id)
	if err != nil {
		return nil, err
	}

	if req.KnowledgeLevel.Set {
		level, err := domain.ParseKnowledgeLevel(req.KnowledgeLevel.Value)
		if err != nil {
			return nil, err
		}
		p.KnowledgeLevel = level
	}

	if req.RiskProfile.Set {
		risk, err := domain.ParseRiskProfile(req.RiskProfile.Value)
		if err != nil {
			return nil, err
		}
		p.RiskProfile = risk
	}

	if req.UserID.Set {
		user, err := resolve(ctx, s.users, domain.KindUser, req.UserID.Value)
		if err != nil {
			return nil, err
		}
		p.UserID = user.ID
	}

	req.IncomeMonthly.Apply(&p.IncomeMonthly)
	req.ExpensesMonthly.Apply(&p.ExpensesMonthly)
	req.PercentageSave.Apply(&p.PercentageSave)
	req.TotalDebt.Apply(&p.TotalDebt)
	req.SavingsTotal.Apply(&p.SavingsTotal)
	req.PatrimonyTotal.Apply(&p.PatrimonyTotal)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save financing profile: %w", err)
	}

	view := toProfileView(p)
	return &view, nil
}

func (s *ProfileService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.profiles, domain.KindFinancingProfile, id)
}
