package evaluation

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no evaluation exists for the given id.
var ErrNotFound = errors.New("evaluation not found")

// Repository is the persistence port for evaluations.
type Repository interface {
	Create(ctx context.Context, ev *Evaluation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Evaluation, error)
	Update(ctx context.Context, ev *Evaluation) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns summaries ordered by updated_at descending.
	List(ctx context.Context, limit, offset int) ([]*Summary, int, error)
}
