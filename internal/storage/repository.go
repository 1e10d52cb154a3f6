package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	UpsertRecap(ctx context.Context, in Recap) error
	GetRecap(ctx context.Context, day string) (Recap, error)
	DeleteRecap(ctx context.Context, day string) error
	ListRecaps(ctx context.Context, filter RecapListFilter) ([]Recap, error)

	CreateActivity(ctx context.Context, in ActivityEntry) error
	ListActivity(ctx context.Context, filter ActivityListFilter) ([]ActivityEntry, error)
	DeleteActivityForDay(ctx context.Context, day string) error
}
