package ports

import (
	"context"
	"time"

	"github.com/taskhive/project-api/internal/core/domain"
)

// ActivityInput is the DTO handed from services to the activity pipeline.
type ActivityInput struct {
	ProjectID  string
	Kind       string
	ActorEmail string
	Detail     string
	OccurredAt time.Time
}

// ActivityService records one activity entry in the audit feed.
type ActivityService interface {
	Record(ctx context.Context, input ActivityInput) error
}

// ActivityRepository persists activity records.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
}
