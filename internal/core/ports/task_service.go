package ports

import (
	"context"

	"github.com/taskhive/project-api/internal/core/domain"
)

// CreateTaskInput carries the data for a new task. Reporter and Assignees
// reference member IDs of the owning project.
type CreateTaskInput struct {
	Title       string
	Description string
	Type        string
	Status      string
	Reporter    string
	Assignees   []string
}

// TaskService covers the minimal task surface needed to feed reporting.
type TaskService interface {
	Create(ctx context.Context, actor Identity, projectID string, input CreateTaskInput) (*domain.Task, error)
}
