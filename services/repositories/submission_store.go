package repositories

import (
	"context"

	"github.com/reinaldotineo/portfolio_api/model"
)

// SubmissionStore is an append-only log of one submission kind. ReadAll
// returns records in append order.
type SubmissionStore[T model.Submission] interface {
	Append(ctx context.Context, record T) error
	ReadAll(ctx context.Context) ([]T, error)
}
