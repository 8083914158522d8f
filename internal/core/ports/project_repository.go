package ports

import (
	"context"

	"github.com/taskhive/project-api/internal/core/domain"
)

// ProjectUpdate carries a partial field merge for a project. Nil fields are
// left untouched; relation lists are never altered through an update.
type ProjectUpdate struct {
	Title       *string
	URL         *string
	Description *string
}

// ProjectRepository defines persistence operations for projects and their
// member snapshots. Lookups return hydrated views: FindByID and
// FindByMemberEmail resolve the members relation, FindBySlug resolves both
// members and tasks.
type ProjectRepository interface {
	// Create persists the creator's member snapshot and the project in a
	// single transaction and returns the stored project with IDs assigned.
	Create(ctx context.Context, project *domain.Project, creator *domain.Member) (*domain.Project, error)

	FindByID(ctx context.Context, id string) (*domain.ProjectView, error)
	FindBySlug(ctx context.Context, slug string) (*domain.ProjectView, error)
	// FindByMemberEmail returns every project the email is enrolled in.
	FindByMemberEmail(ctx context.Context, email string) ([]*domain.ProjectView, error)

	Update(ctx context.Context, id string, update ProjectUpdate) error
	Delete(ctx context.Context, id string) error

	// AddMember persists the member snapshot and appends its ID to the
	// project's members relation in a single transaction. A storage-level
	// uniqueness constraint on (project, email) backs the duplicate check;
	// violations surface as domain.ErrAlreadyMember.
	AddMember(ctx context.Context, projectID string, member *domain.Member) (*domain.Member, error)
}
