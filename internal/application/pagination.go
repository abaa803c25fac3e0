package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmanzanog/finrecords/internal/domain"
)

var ErrInvalidPageSize = errors.New("page size must be greater than zero")

// PageEnvelope is one page of views with the totals of the whole collection.
type PageEnvelope[V any] struct {
	Items         []V   `json:"items"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// Paginate maps a store page to views in store order.
func Paginate[T, V any](page domain.Page[T], pageSize int, toView func(*T) V) (PageEnvelope[V], error) {
	if pageSize <= 0 {
		return PageEnvelope[V]{}, ErrInvalidPageSize
	}

	items := make([]V, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toView(&page.Items[i]))
	}

	return PageEnvelope[V]{
		Items:         items,
		TotalPages:    int((page.TotalElements + int64(pageSize) - 1) / int64(pageSize)),
		TotalElements: page.TotalElements,
	}, nil
}

func listPage[T, V any](ctx context.Context, store domain.Store[T], kind domain.EntityKind, pageIndex, pageSize int, toView func(*T) V) (PageEnvelope[V], error) {
	if pageSize <= 0 {
		return PageEnvelope[V]{}, ErrInvalidPageSize
	}

	page, err := store.FindPage(ctx, pageIndex, pageSize)
	if err != nil {
		return PageEnvelope[V]{}, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	return Paginate(page, pageSize, toView)
}
