package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmanzanog/finrecords/internal/domain"
)

// resolve loads the record of the given kind or fails with a NotFoundError for
// that kind. Store faults are wrapped and left unclassified.
func resolve[T any](ctx context.Context, store domain.Store[T], kind domain.EntityKind, id string) (*T, error) {
	record, err := store.FindByID(ctx, id)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError(kind, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s %s: %w", kind, id, err)
	}
	return record, nil
}

// remove deletes id after checking it exists.
func remove[T any](ctx context.Context, store domain.Store[T], kind domain.EntityKind, id string) error {
	exists, err := store.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check %s %s: %w", kind, id, err)
	}
	if !exists {
		return domain.NewNotFoundError(kind, id)
	}
	if err := store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	return nil
}
