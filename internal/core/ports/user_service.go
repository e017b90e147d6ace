package ports

import (
	"context"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
)

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
