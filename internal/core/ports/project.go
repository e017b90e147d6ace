package ports

import (
	"context"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
)

// ProjectInput carries the editable fields of a project.
type ProjectInput struct {
	Title         string
	Description   string
	ImageURL      string
	Link          string
	RepositoryURL string
	Technologies  []string
}

// ProjectRepository persists portfolio projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	// List returns projects newest first.
	List(ctx context.Context) ([]*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// Update replaces the editable fields and returns the stored document.
	Update(ctx context.Context, id string, p *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type ProjectService interface {
	List(ctx context.Context) ([]*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, input ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id string, input ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
