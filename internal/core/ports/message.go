package ports

import (
	"context"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
)

// CreateMessageInput is a contact-form submission.
type CreateMessageInput struct {
	Name    string
	Email   string
	Message string
}

// MessageRepository persists contact messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	// List returns messages newest first.
	List(ctx context.Context) ([]*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

// MessageDeduplicator suppresses repeated submissions within a window.
type MessageDeduplicator interface {
	// Claim returns true the first time fingerprint is seen in the window.
	Claim(ctx context.Context, fingerprint string) (bool, error)
	// Release forgets a claim whose message was not stored.
	Release(ctx context.Context, fingerprint string) error
}

type MessageService interface {
	List(ctx context.Context) ([]*domain.Message, error)
	Create(ctx context.Context, input CreateMessageInput) error
	Delete(ctx context.Context, id string) error
}
