package service

import (
	"context"
	"fmt"

	"github.com/recaplabs/recapd/internal/model"
)

// ServiceError wraps any failure crossing the recap service boundary. The
// sync layer converts it to a status message and never propagates it further.
type ServiceError struct {
	Op  string
	Day model.DayKey
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("recap service: %s %s: %v", e.Op, e.Day, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Service is the recap collaborator. Fetch reports absence through the bool
// rather than an error; Generate always produces a recap or fails. Generate
// may take materially longer than Fetch.
type Service interface {
	Fetch(ctx context.Context, day model.DayKey) (model.Recap, bool, error)
	Generate(ctx context.Context, day model.DayKey) (model.Recap, error)
}
