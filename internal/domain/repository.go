package domain

import "context"

// Page is one slice of a collection plus the size of the whole collection.
type Page[T any] struct {
	Items         []T
	TotalElements int64
}

// Store is keyed persistence for one kind of record. FindByID returns
// ErrRecordNotFound on a miss. FindPage uses a zero-based page index and orders
// records by creation time, then id.
// All methods accept context.Context to enable proper timeout handling,
// cancellation propagation, and request-scoped values like tracing IDs.
type Store[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	FindPage(ctx context.Context, pageIndex, pageSize int) (Page[T], error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, record *T) error
	DeleteByID(ctx context.Context, id string) error
}

type TransactionRepository interface {
	Store[Transaction]
	CountByPortfolio(ctx context.Context, portfolioID string) (int64, error)
}

type (
	PortfolioRepository    = Store[Portfolio]
	NotificationRepository = Store[Notification]
	ProfileRepository      = Store[FinancingProfile]
	UserRepository         = Store[User]
)
