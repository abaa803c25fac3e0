package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
)

// Store keeps records of one kind in process memory. Records are copied on the
// way in and on the way out so callers never share state with the store.
type Store[T any] struct {
	mu        sync.RWMutex
	records   map[string]T
	idOf      func(*T) string
	createdAt func(*T) time.Time
}

func newStore[T any](idOf func(*T) string, createdAt func(*T) time.Time) *Store[T] {
	return &Store[T]{
		records:   make(map[string]T),
		idOf:      idOf,
		createdAt: createdAt,
	}
}

func (s *Store[T]) FindByID(ctx context.Context, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return nil, domain.ErrRecordNotFound
	}
	return &record, nil
}

func (s *Store[T]) FindPage(ctx context.Context, pageIndex, pageSize int) (domain.Page[T], error) {
	s.mu.RLock()
	all := make([]T, 0, len(s.records))
	for _, r := range s.records {
		all = append(all, r)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		ci, cj := s.createdAt(&all[i]), s.createdAt(&all[j])
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return s.idOf(&all[i]) < s.idOf(&all[j])
	})

	page := domain.Page[T]{Items: []T{}, TotalElements: int64(len(all))}
	if pageIndex < 0 || pageSize <= 0 || len(all) == 0 || pageIndex > (len(all)-1)/pageSize {
		return page, nil
	}
	start := pageIndex * pageSize
	end := min(start+pageSize, len(all))
	page.Items = all[start:end]
	return page, nil
}

func (s *Store[T]) ExistsByID(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.records[id]
	return exists, nil
}

func (s *Store[T]) Save(ctx context.Context, record *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[s.idOf(record)] = *record
	return nil
}

func (s *Store[T]) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return domain.ErrRecordNotFound
	}
	delete(s.records, id)
	return nil
}
