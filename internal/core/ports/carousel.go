package ports

import (
	"context"
	"time"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
)

// CreateCarouselImageInput carries a new carousel slide.
type CreateCarouselImageInput struct {
	ImageURL    string
	Title       string
	Description string
	Order       int
}

// CarouselRepository persists carousel slides.
type CarouselRepository interface {
	Create(ctx context.Context, img *domain.CarouselImage) error
	// List returns slides by ascending order, then creation time.
	List(ctx context.Context) ([]*domain.CarouselImage, error)
	Delete(ctx context.Context, id string) error
}

// PresignedPut is a presigned PUT request and the headers it must be sent with.
type PresignedPut struct {
	URL     string
	Headers map[string]string
}

// UploadPresigner hands out presigned object-storage PUT URLs.
type UploadPresigner interface {
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (PresignedPut, error)
	PublicURL(key string) string
	// ContentType reports the Content-Type an uploaded object was stored with.
	// A missing object yields domain.ErrNotFound.
	ContentType(ctx context.Context, key string) (string, error)
}

type CarouselService interface {
	List(ctx context.Context) ([]*domain.CarouselImage, error)
	Create(ctx context.Context, input CreateCarouselImageInput) (*domain.CarouselImage, error)
	Delete(ctx context.Context, id string) error
	PresignUpload(ctx context.Context, contentType string) (*domain.Upload, error)
}
