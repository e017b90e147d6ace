package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

// newContext builds an echo context for a JSON request. A non-empty userID
// simulates a request admitted by the Auth middleware.
func newContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		req = req.WithContext(ports.WithSubject(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
}

func assertStatus(t *testing.T, err error, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) error
	loginFn    func(ctx context.Context, username, password string) (string, error)
	settingsFn func(ctx context.Context, userID string, in ports.SettingsInput) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) UpdateSettings(ctx context.Context, userID string, in ports.SettingsInput) error {
	return s.settingsFn(ctx, userID, in)
}

type stubUserService struct {
	users     []*domain.User
	deleteErr error
	deleted   string
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) { return s.users, nil }

func (s *stubUserService) Delete(_ context.Context, id string) error {
	s.deleted = id
	return s.deleteErr
}

type stubMessageService struct {
	msgs      []*domain.Message
	created   []ports.CreateMessageInput
	createErr error
	deleteErr error
}

func (s *stubMessageService) List(context.Context) ([]*domain.Message, error) { return s.msgs, nil }

func (s *stubMessageService) Create(_ context.Context, in ports.CreateMessageInput) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, in)
	return nil
}

func (s *stubMessageService) Delete(context.Context, string) error { return s.deleteErr }

type stubProjectService struct {
	projects  map[string]*domain.Project
	lastInput ports.ProjectInput
}

func (s *stubProjectService) List(context.Context) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProjectService) Get(_ context.Context, id string) (*domain.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubProjectService) Create(_ context.Context, in ports.ProjectInput) (*domain.Project, error) {
	s.lastInput = in
	return &domain.Project{ID: "p1", Title: in.Title, Description: in.Description, Technologies: in.Technologies}, nil
}

func (s *stubProjectService) Update(_ context.Context, id string, in ports.ProjectInput) (*domain.Project, error) {
	s.lastInput = in
	if _, ok := s.projects[id]; !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Project{ID: id, Title: in.Title, Description: in.Description}, nil
}

func (s *stubProjectService) Delete(_ context.Context, id string) error {
	if _, ok := s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

type stubCarouselService struct {
	images    []*domain.CarouselImage
	upload    *domain.Upload
	uploadErr error
	gotType   string
}

func (s *stubCarouselService) List(context.Context) ([]*domain.CarouselImage, error) {
	return s.images, nil
}

func (s *stubCarouselService) Create(_ context.Context, in ports.CreateCarouselImageInput) (*domain.CarouselImage, error) {
	img := &domain.CarouselImage{ID: "c1", ImageURL: in.ImageURL, Title: in.Title, Order: in.Order}
	s.images = append(s.images, img)
	return img, nil
}

func (s *stubCarouselService) Delete(context.Context, string) error { return nil }

func (s *stubCarouselService) PresignUpload(_ context.Context, contentType string) (*domain.Upload, error) {
	s.gotType = contentType
	return s.upload, s.uploadErr
}
