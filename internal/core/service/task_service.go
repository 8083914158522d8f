package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

// TaskService covers the minimal task surface that feeds reporting: any
// enrolled member may file a task into the project.
type TaskService struct {
	tasks      ports.TaskRepository
	projects   ports.ProjectRepository
	cache      ReportCache
	activities ActivityDispatcher
	logger     zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	projects ports.ProjectRepository,
	cache ReportCache,
	activities ActivityDispatcher,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{
		tasks:      tasks,
		projects:   projects,
		cache:      cache,
		activities: activities,
		logger:     logger,
	}
}

// Create files a task into a project. The actor must be an enrolled member;
// administrator rights are not required for task creation.
func (s *TaskService) Create(ctx context.Context, actor ports.Identity, projectID string, input ports.CreateTaskInput) (*domain.Task, error) {
	view, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !view.HasMemberEmail(actor.Email) {
		return nil, domain.ErrForbidden
	}

	task := &domain.Task{
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		Type:        domain.TaskType(input.Type),
		Status:      domain.TaskStatus(input.Status),
		Reporter:    input.Reporter,
		Assignees:   input.Assignees,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID).Msg("failed to create task")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, view.URL); err != nil {
			s.logger.Warn().Err(err).Str("slug", view.URL).Msg("failed to invalidate report cache")
		}
	}

	s.logger.Info().Str("project_id", projectID).Str("task_id", created.ID).Str("actor", actor.Email).Msg("task created")
	if s.activities != nil {
		s.activities.Enqueue(ports.ActivityInput{
			ProjectID:  projectID,
			Kind:       domain.ActivityTaskCreated,
			ActorEmail: actor.Email,
			Detail:     created.Title,
			OccurredAt: time.Now().UTC(),
		})
	}

	return created, nil
}
