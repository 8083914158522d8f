package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

// ActivityDispatcher is the interface services use to emit audit activities.
// Recording is fire-and-forget; enqueueing never fails the calling request.
type ActivityDispatcher interface {
	Enqueue(input ports.ActivityInput)
}

// ReportCache abstracts the report cache (Redis). Get returns (nil, nil) on
// a miss.
type ReportCache interface {
	Get(ctx context.Context, slug string) (*domain.ProjectReport, error)
	Set(ctx context.Context, slug string, report *domain.ProjectReport) error
	Invalidate(ctx context.Context, slug string) error
}

// ProjectService implements the project use cases: lifecycle mutations
// gated by the membership-derived authorization check, membership
// enrollment, and aggregated lookups.
type ProjectService struct {
	repo       ports.ProjectRepository
	users      ports.UserRepository
	cache      ReportCache
	activities ActivityDispatcher
	logger     zerolog.Logger
}

func NewProjectService(
	repo ports.ProjectRepository,
	users ports.UserRepository,
	cache ReportCache,
	activities ActivityDispatcher,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		repo:       repo,
		users:      users,
		cache:      cache,
		activities: activities,
		logger:     logger,
	}
}

// Create persists a new project with the author enrolled as its first
// member under the Administrator role. Both writes happen in one
// repository transaction.
func (s *ProjectService) Create(ctx context.Context, actor ports.Identity, input ports.CreateProjectInput) (*domain.Project, error) {
	creator := domain.NewMemberSnapshot(&domain.User{
		Email:     actor.Email,
		FirstName: actor.FirstName,
		LastName:  actor.LastName,
		Avatar:    actor.Avatar,
	}, domain.RoleAdministrator)

	now := time.Now().UTC()
	project := &domain.Project{
		Title:       input.Title,
		URL:         input.URL,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, project, creator)
	if err != nil {
		s.logger.Error().Err(err).Str("url", input.URL).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("url", created.URL).Str("actor", actor.Email).Msg("project created")
	s.emit(created.ID, domain.ActivityProjectCreated, actor.Email, created.Title)

	return created, nil
}

// List returns summaries of every project the actor is enrolled in.
func (s *ProjectService) List(ctx context.Context, actor ports.Identity) ([]ports.ProjectSummary, error) {
	views, err := s.repo.FindByMemberEmail(ctx, actor.Email)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.ProjectSummary, 0, len(views))
	for _, v := range views {
		summaries = append(summaries, ports.ProjectSummary{
			ID:          v.ID,
			Title:       v.Title,
			URL:         v.URL,
			Description: v.Description,
			MemberCount: len(v.Members),
			TaskCount:   len(v.Tasks),
			PM:          v.Administrator(),
		})
	}
	return summaries, nil
}

// Get resolves a project by slug with members and tasks hydrated.
func (s *ProjectService) Get(ctx context.Context, slug string) (*domain.ProjectView, error) {
	return s.repo.FindBySlug(ctx, slug)
}

// Update applies a partial field merge. Only an Administrator member may
// update; relation lists are never touched.
func (s *ProjectService) Update(ctx context.Context, actor ports.Identity, id string, input ports.UpdateProjectInput) error {
	view, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.IsAuthorized(view.Members, actor.Email) {
		return domain.ErrForbidden
	}

	update := ports.ProjectUpdate{
		Title:       input.Title,
		URL:         input.URL,
		Description: input.Description,
	}
	if err := s.repo.Update(ctx, id, update); err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	s.invalidateReport(ctx, view.URL)
	if input.URL != nil && *input.URL != view.URL {
		s.invalidateReport(ctx, *input.URL)
	}

	s.logger.Info().Str("project_id", id).Str("actor", actor.Email).Msg("project updated")
	s.emit(id, domain.ActivityProjectUpdated, actor.Email, "")
	return nil
}

// Remove deletes the project document. Member and task documents are left
// in place; the deletion is recorded in the activity feed instead.
func (s *ProjectService) Remove(ctx context.Context, actor ports.Identity, id string) error {
	view, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.IsAuthorized(view.Members, actor.Email) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove project: %w", err)
	}

	s.invalidateReport(ctx, view.URL)

	s.logger.Info().Str("project_id", id).Str("actor", actor.Email).Msg("project deleted")
	s.emit(id, domain.ActivityProjectDeleted, actor.Email, view.Title)
	return nil
}

// AddMember enrolls a directory user into the project. Step order is a
// contract: resolve project, authorize the actor, resolve the target user,
// reject duplicates, then persist the snapshot and relation append.
func (s *ProjectService) AddMember(ctx context.Context, actor ports.Identity, projectID string, input ports.AddMemberInput) (*domain.Member, error) {
	view, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !domain.IsAuthorized(view.Members, actor.Email) {
		return nil, domain.ErrForbidden
	}

	account, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if view.HasMemberEmail(account.Email) {
		return nil, domain.ErrAlreadyMember
	}

	member := domain.NewMemberSnapshot(account, input.Role)
	created, err := s.repo.AddMember(ctx, projectID, member)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID).Str("email", input.Email).Msg("failed to add member")
		return nil, err
	}

	s.invalidateReport(ctx, view.URL)

	s.logger.Info().
		Str("project_id", projectID).
		Str("email", created.Email).
		Str("role", created.Role).
		Str("actor", actor.Email).
		Msg("member added")
	s.emit(projectID, domain.ActivityMemberAdded, actor.Email, created.Email)

	return created, nil
}

func (s *ProjectService) emit(projectID, kind, actorEmail, detail string) {
	if s.activities == nil {
		return
	}
	s.activities.Enqueue(ports.ActivityInput{
		ProjectID:  projectID,
		Kind:       kind,
		ActorEmail: actorEmail,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	})
}

func (s *ProjectService) invalidateReport(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("failed to invalidate report cache")
	}
}
