package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
)

// RecordCounter returns the number of stored records per kind.
type RecordCounter interface {
	CountRecords(ctx context.Context) (map[domain.EntityKind]int64, error)
}

// CountPublisher receives the counts, typically a metrics gauge.
type CountPublisher interface {
	SetRecordCount(kind domain.EntityKind, count int64)
}

// Inventory counts records through the stores' paged listing.
type Inventory struct {
	counters map[domain.EntityKind]func(ctx context.Context) (int64, error)
}

func NewInventory(
	transactions domain.TransactionRepository,
	portfolios domain.PortfolioRepository,
	notifications domain.NotificationRepository,
	profiles domain.ProfileRepository,
	users domain.UserRepository,
) *Inventory {
	return &Inventory{
		counters: map[domain.EntityKind]func(ctx context.Context) (int64, error){
			domain.KindTransaction:      totalOf[domain.Transaction](transactions),
			domain.KindPortfolio:        totalOf[domain.Portfolio](portfolios),
			domain.KindNotification:     totalOf[domain.Notification](notifications),
			domain.KindFinancingProfile: totalOf[domain.FinancingProfile](profiles),
			domain.KindUser:             totalOf[domain.User](users),
		},
	}
}

func totalOf[T any](store domain.Store[T]) func(ctx context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		page, err := store.FindPage(ctx, 0, 1)
		if err != nil {
			return 0, err
		}
		return page.TotalElements, nil
	}
}

func (i *Inventory) CountRecords(ctx context.Context) (map[domain.EntityKind]int64, error) {
	counts := make(map[domain.EntityKind]int64, len(i.counters))
	for kind, count := range i.counters {
		n, err := count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s records: %w", kind, err)
		}
		counts[kind] = n
	}
	return counts, nil
}

// StatsRefresher periodically publishes record counts.
type StatsRefresher struct {
	counter   RecordCounter
	publisher CountPublisher
	interval  time.Duration
	stopChan  chan struct{}
}

func NewStatsRefresher(counter RecordCounter, publisher CountPublisher, interval time.Duration) *StatsRefresher {
	return &StatsRefresher{
		counter:   counter,
		publisher: publisher,
		interval:  interval,
		stopChan:  make(chan struct{}),
	}
}

func (r *StatsRefresher) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("Stats refresher started", "interval", r.interval)

	r.refresh(ctx)
	for {
		select {
		case <-ticker.C:
			r.refresh(ctx)
		case <-r.stopChan:
			slog.Info("Stats refresher stopped")
			return
		case <-ctx.Done():
			slog.Info("Stats refresher stopped due to context cancellation")
			return
		}
	}
}

func (r *StatsRefresher) refresh(ctx context.Context) {
	counts, err := r.counter.CountRecords(ctx)
	if err != nil {
		slog.Error("Error refreshing record counts", "error", err)
		return
	}
	for kind, n := range counts {
		r.publisher.SetRecordCount(kind, n)
	}
	slog.Debug("Record counts refreshed", "kinds", len(counts))
}

func (r *StatsRefresher) Stop() {
	close(r.stopChan)
}
