package application

import (
	"context"
	"fmt"
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
)

// UserService registers the users that notifications, portfolios and profiles
// point at. Users are never updated or deleted here.
type UserService struct {
	users domain.UserRepository
	now   func() time.Time
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users, now: time.Now}
}

func (s *UserService) List(ctx context.Context, pageIndex, pageSize int) (PageEnvelope[UserView], error) {
	return listPage(ctx, s.users, domain.KindUser, pageIndex, pageSize, toUserView)
}

func (s *UserService) Get(ctx context.Context, id string) (*UserView, error) {
	u, err := resolve(ctx, s.users, domain.KindUser, id)
	if err != nil {
		return nil, err
	}
	view := toUserView(u)
	return &view, nil
}

func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserView, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	u := domain.NewUser(req.Name, req.Email, s.now())
	if err := s.users.Save(ctx, &u); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	view := toUserView(&u)
	return &view, nil
}
