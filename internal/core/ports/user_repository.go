package ports

import (
	"context"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create persists a new user and returns it with its assigned ID.
	// A username or email collision yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns every user. PasswordHash is left empty.
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateCredentials replaces email and password hash together.
	UpdateCredentials(ctx context.Context, id, email, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
