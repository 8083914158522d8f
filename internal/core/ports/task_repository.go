package ports

import (
	"context"

	"github.com/taskhive/project-api/internal/core/domain"
)

// TaskRepository persists tasks. Create inserts the task document and
// appends its ID to the owning project's tasks relation in one transaction.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
}
