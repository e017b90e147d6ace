package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
	"github.com/folio-labs/portfolio-api/internal/pkg/metrics"
)

// AuthService implements registration, login and credential updates.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	audit  ports.AuditRecorder
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		audit:  audit,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return err
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("register: %w", err)
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return err
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("register: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.record(ctx, domain.AuthEventRegister, created.Username, created.ID)
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return nil
}

// Login returns a signed token bound to the user's ID. An unknown username
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			s.record(ctx, domain.AuthEventLoginFailure, username, "")
			return "", domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: %w", err)
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		s.record(ctx, domain.AuthEventLoginFailure, username, user.ID)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(ctx, domain.AuthEventLoginSuccess, user.Username, user.ID)
	return token, nil
}

// UpdateSettings replaces the email and password of userID in one write.
func (s *AuthService) UpdateSettings(ctx context.Context, userID string, in ports.SettingsInput) error {
	if in.Email == "" || in.Password == "" {
		return fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err
		}
		return fmt.Errorf("update settings: %w", err)
	}

	if err := s.repo.UpdateCredentials(ctx, userID, in.Email, hash); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	s.record(ctx, domain.AuthEventSettingsUpdate, "", userID)
	s.log.Info().Str("user_id", userID).Msg("credentials updated")
	return nil
}

func (s *AuthService) record(ctx context.Context, typ domain.AuthEventType, username, userID string) {
	meta := ports.RequestMetaFrom(ctx)
	s.audit.Record(domain.AuthEvent{
		Type:       typ,
		Username:   username,
		UserID:     userID,
		RemoteIP:   meta.RemoteIP,
		RequestID:  meta.RequestID,
		OccurredAt: s.now(),
	})
}

type discardAudit struct{}

func (discardAudit) Record(domain.AuthEvent) {}
