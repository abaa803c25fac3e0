package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
	"github.com/jmanzanog/finrecords/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type fixture struct {
	transactions  *memory.TransactionRepository
	portfolios    *memory.Store[domain.Portfolio]
	notifications *memory.Store[domain.Notification]
	profiles      *memory.Store[domain.FinancingProfile]
	users         *memory.Store[domain.User]
	clock         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		transactions:  memory.NewTransactionRepository(),
		portfolios:    memory.NewPortfolioRepository(),
		notifications: memory.NewNotificationRepository(),
		profiles:      memory.NewProfileRepository(),
		users:         memory.NewUserRepository(),
		clock:         fixedNow,
	}
}

// tick returns a strictly increasing clock so that creation order is stable.
func (f *fixture) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fixture) transactionService() *TransactionService {
	s := NewTransactionService(f.transactions, f.portfolios)
	s.now = f.tick
	return s
}

func (f *fixture) notificationService() *NotificationService {
	s := NewNotificationService(f.notifications, f.users)
	s.now = f.tick
	return s
}

func (f *fixture) profileService() *ProfileService {
	s := NewProfileService(f.profiles, f.users)
	s.now = f.tick
	return s
}

func (f *fixture) portfolioService(guarded bool) *PortfolioService {
	var guard TransactionCounter
	if guarded {
		guard = f.transactions
	}
	s := NewPortfolioService(f.portfolios, f.users, guard)
	s.now = f.tick
	return s
}

func (f *fixture) userService() *UserService {
	s := NewUserService(f.users)
	s.now = f.tick
	return s
}

func (f *fixture) inventory() *Inventory {
	return NewInventory(f.transactions, f.portfolios, f.notifications, f.profiles, f.users)
}

func (f *fixture) seedUser(t *testing.T) domain.User {
	t.Helper()
	u := domain.NewUser("Ana", "ana@example.com", f.tick())
	require.NoError(t, f.users.Save(context.Background(), &u))
	return u
}

func (f *fixture) seedPortfolio(t *testing.T, userID string) domain.Portfolio {
	t.Helper()
	p := domain.NewPortfolio("Main", "", userID, f.tick())
	require.NoError(t, f.portfolios.Save(context.Background(), &p))
	return p
}

func (f *fixture) seedTransactions(t *testing.T, portfolioID string, n int) []domain.Transaction {
	t.Helper()
	out := make([]domain.Transaction, 0, n)
	for i := 0; i < n; i++ {
		tx := domain.NewTransaction(portfolioID, "DEPOSIT", domain.NewDecimalFromInt(int64(i+1)),
			fixedNow, fmt.Sprintf("seed %d", i), f.tick())
		require.NoError(t, f.transactions.Save(context.Background(), &tx))
		out = append(out, tx)
	}
	return out
}

func (f *fixture) seedNotification(t *testing.T, userID string) domain.Notification {
	t.Helper()
	n := domain.NewNotification(domain.NotificationTypeSystem, "hi", false, userID, f.tick())
	require.NoError(t, f.notifications.Save(context.Background(), &n))
	return n
}

func ptr[T any](v T) *T { return &v }

// total counts the records held by a memory store.
func total[T any](t *testing.T, s *memory.Store[T]) int {
	t.Helper()
	page, err := s.FindPage(context.Background(), 0, 1)
	require.NoError(t, err)
	return int(page.TotalElements)
}
