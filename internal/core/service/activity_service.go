package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that persists audit
// records. It is driven by the queue dispatcher workers, never directly by
// request handlers.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Record(ctx context.Context, in ports.ActivityInput) error {
	activity := &domain.Activity{
		ProjectID:  in.ProjectID,
		Kind:       in.Kind,
		ActorEmail: in.ActorEmail,
		Detail:     in.Detail,
		OccurredAt: in.OccurredAt,
	}

	if err := s.repo.Insert(ctx, activity); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("project_id", in.ProjectID).
		Str("kind", in.Kind).
		Str("actor", in.ActorEmail).
		Msg("activity recorded")

	return nil
}
