package ports

import (
	"context"

	"github.com/taskhive/project-api/internal/core/domain"
)

// UserRepository defines persistence for the canonical user directory.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Search returns up to limit users whose email or name matches the
	// query, used by the add-member picker.
	Search(ctx context.Context, query string, limit int) ([]*domain.User, error)
}
