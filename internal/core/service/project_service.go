package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

type ProjectService struct {
	repo ports.ProjectRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewProjectService(repo ports.ProjectRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (s *ProjectService) Create(ctx context.Context, in ports.ProjectInput) (*domain.Project, error) {
	if err := validateProject(in); err != nil {
		return nil, err
	}

	now := s.now()
	p := toProject(in)
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error().Err(err).Msg("failed to create project")
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info().Str("project_id", p.ID).Str("title", p.Title).Msg("project created")
	return p, nil
}

// Update replaces every editable field of the project; CreatedAt is kept.
func (s *ProjectService) Update(ctx context.Context, id string, in ports.ProjectInput) (*domain.Project, error) {
	if err := validateProject(in); err != nil {
		return nil, err
	}

	p := toProject(in)
	p.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.log.Info().Str("project_id", id).Msg("project updated")
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.log.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

func validateProject(in ports.ProjectInput) error {
	if in.Title == "" || in.Description == "" {
		return fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}
	return nil
}

func toProject(in ports.ProjectInput) *domain.Project {
	techs := in.Technologies
	if techs == nil {
		techs = []string{}
	}
	return &domain.Project{
		Title:         in.Title,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		Link:          in.Link,
		RepositoryURL: in.RepositoryURL,
		Technologies:  techs,
	}
}
