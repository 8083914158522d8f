package ports

import (
	"context"

	"github.com/taskhive/project-api/internal/core/domain"
)

// RegisterInput carries the data needed to create a new user account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Avatar    string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, email string) (*domain.User, error)
	SearchUsers(ctx context.Context, query string) ([]*domain.User, error)
}
