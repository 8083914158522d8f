package ports

import (
	"context"

	"github.com/taskhive/project-api/internal/core/domain"
)

// Identity is the authenticated caller record delivered by the request
// layer after token verification.
type Identity struct {
	Email     string
	FirstName string
	LastName  string
	Avatar    string
}

// CreateProjectInput carries the data for a new project.
type CreateProjectInput struct {
	Title       string
	URL         string
	Description string
}

// UpdateProjectInput is a partial update; nil fields are not touched.
type UpdateProjectInput struct {
	Title       *string
	URL         *string
	Description *string
}

// AddMemberInput enrolls an existing user into a project under a role.
type AddMemberInput struct {
	Email string
	Role  string
}

// ProjectSummary is the lightweight listing view: relation lists collapsed
// to counts plus the administrator ("pm") snapshot.
type ProjectSummary struct {
	ID          string
	Title       string
	URL         string
	Description string
	MemberCount int
	TaskCount   int
	PM          *domain.Member
}

// ProjectService defines the project use cases.
type ProjectService interface {
	Create(ctx context.Context, actor Identity, input CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, actor Identity) ([]ProjectSummary, error)
	Get(ctx context.Context, slug string) (*domain.ProjectView, error)
	Update(ctx context.Context, actor Identity, id string, input UpdateProjectInput) error
	Remove(ctx context.Context, actor Identity, id string) error
	AddMember(ctx context.Context, actor Identity, projectID string, input AddMemberInput) (*domain.Member, error)
}

// ReportService derives reporting data from an aggregated project view.
type ReportService interface {
	Report(ctx context.Context, slug string) (*domain.ProjectReport, error)
}
