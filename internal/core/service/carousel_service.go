package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

const defaultUploadTTL = 15 * time.Minute

// uploadExtensions lists the image types accepted for carousel uploads.
var uploadExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type CarouselService struct {
	repo      ports.CarouselRepository
	presigner ports.UploadPresigner
	uploadTTL time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

// NewCarouselService returns a CarouselService. presigner may be nil, which
// disables PresignUpload.
func NewCarouselService(repo ports.CarouselRepository, presigner ports.UploadPresigner, uploadTTL time.Duration, log zerolog.Logger) *CarouselService {
	if uploadTTL <= 0 {
		uploadTTL = defaultUploadTTL
	}
	return &CarouselService{
		repo:      repo,
		presigner: presigner,
		uploadTTL: uploadTTL,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *CarouselService) List(ctx context.Context) ([]*domain.CarouselImage, error) {
	imgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list carousel: %w", err)
	}
	return imgs, nil
}

func (s *CarouselService) Create(ctx context.Context, in ports.CreateCarouselImageInput) (*domain.CarouselImage, error) {
	if in.ImageURL == "" {
		return nil, fmt.Errorf("%w: image_url is required", domain.ErrValidation)
	}
	if err := s.checkUpload(ctx, in.ImageURL); err != nil {
		return nil, err
	}

	img := &domain.CarouselImage{
		ImageURL:    in.ImageURL,
		Title:       in.Title,
		Description: in.Description,
		Order:       in.Order,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, fmt.Errorf("create carousel image: %w", err)
	}

	s.log.Info().Str("image_id", img.ID).Msg("carousel image created")
	return img, nil
}

func (s *CarouselService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete carousel image: %w", err)
	}
	s.log.Info().Str("image_id", id).Msg("carousel image deleted")
	return nil
}

// PresignUpload reserves a fresh object key under carousel/ and returns a
// presigned PUT URL for it.
func (s *CarouselService) PresignUpload(ctx context.Context, contentType string) (*domain.Upload, error) {
	if s.presigner == nil {
		return nil, domain.ErrUploadsDisabled
	}

	ext, ok := uploadExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: content_type must be one of image/jpeg, image/png, image/webp, image/gif", domain.ErrValidation)
	}

	key := "carousel/" + uuid.NewString() + ext
	expiresAt := s.now().Add(s.uploadTTL)

	put, err := s.presigner.PresignPut(ctx, key, contentType, s.uploadTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	s.log.Debug().Str("key", key).Msg("upload presigned")
	return &domain.Upload{
		Key:       key,
		UploadURL: put.URL,
		Headers:   put.Headers,
		PublicURL: s.presigner.PublicURL(key),
		ExpiresAt: expiresAt,
	}, nil
}

// checkUpload verifies that an image_url pointing into the upload bucket
// names an object stored with an accepted image type. The presigned URL does
// not bind Content-Type, so this is where the type is enforced. Other URLs
// pass through.
func (s *CarouselService) checkUpload(ctx context.Context, imageURL string) error {
	if s.presigner == nil {
		return nil
	}
	rest, ok := strings.CutPrefix(imageURL, s.presigner.PublicURL(""))
	if !ok || !strings.HasPrefix(rest, "carousel/") {
		return nil
	}
	key, err := url.PathUnescape(rest)
	if err != nil {
		return fmt.Errorf("%w: malformed image_url", domain.ErrValidation)
	}

	ct, err := s.presigner.ContentType(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: image_url has not been uploaded", domain.ErrValidation)
	}
	if err != nil {
		return fmt.Errorf("check upload: %w", err)
	}
	if _, ok := uploadExtensions[ct]; !ok {
		s.log.Warn().Str("key", key).Str("content_type", ct).Msg("upload rejected")
		return fmt.Errorf("%w: uploaded object has content type %q", domain.ErrValidation, ct)
	}
	return nil
}
