package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
	"github.com/folio-labs/portfolio-api/internal/pkg/metrics"
)

const releaseTimeout = 2 * time.Second

type MessageService struct {
	repo  ports.MessageRepository
	dedup ports.MessageDeduplicator
	log   zerolog.Logger
	now   func() time.Time
}

// NewMessageService returns a MessageService. dedup may be nil, in which case
// every submission is stored.
func NewMessageService(repo ports.MessageRepository, dedup ports.MessageDeduplicator, log zerolog.Logger) *MessageService {
	return &MessageService{
		repo:  repo,
		dedup: dedup,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *MessageService) List(ctx context.Context) ([]*domain.Message, error) {
	msgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// Create stores a contact message. A resubmission of the same message inside
// the dedup window is accepted but not stored again.
func (s *MessageService) Create(ctx context.Context, in ports.CreateMessageInput) error {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}

	fp := fingerprint(in)
	claimed := false
	if s.dedup != nil {
		first, err := s.dedup.Claim(ctx, fp)
		claimed = err == nil && first
		if err != nil {
			s.log.Warn().Err(err).Str("email", in.Email).Msg("message dedup check failed, storing anyway")
		} else if !first {
			metrics.MessagesReceivedTotal.WithLabelValues("duplicate").Inc()
			s.log.Debug().Str("email", in.Email).Msg("duplicate message skipped")
			return nil
		}
	}

	msg := &domain.Message{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Date:    s.now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		if claimed {
			s.release(fp)
		}
		return fmt.Errorf("create message: %w", err)
	}

	metrics.MessagesReceivedTotal.WithLabelValues("stored").Inc()
	s.log.Info().Str("message_id", msg.ID).Str("email", in.Email).Msg("message received")
	return nil
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	s.log.Info().Str("message_id", id).Msg("message deleted")
	return nil
}

// release drops the claim on fp so a retry after a failed insert is stored.
// The request context may already be done, so it gets its own deadline.
func (s *MessageService) release(fp string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	if err := s.dedup.Release(ctx, fp); err != nil {
		s.log.Warn().Err(err).Msg("message dedup release failed")
	}
}

// fingerprint identifies a submission by its content.
func fingerprint(in ports.CreateMessageInput) string {
	h := sha256.New()
	for _, part := range []string{in.Name, in.Email, in.Message} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
