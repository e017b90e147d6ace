package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

func TestCarouselService_CreateListDelete(t *testing.T) {
	repo := &stubCarouselRepo{}
	svc := NewCarouselService(repo, nil, 0, discardLogger)

	second, err := svc.Create(context.Background(), ports.CreateCarouselImageInput{ImageURL: "https://img/2.jpg", Order: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateCarouselImageInput{ImageURL: "https://img/1.jpg", Order: 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	imgs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(imgs) != 2 || imgs[0].Order != 1 {
		t.Fatalf("expected slides ordered by order, got %+v", imgs)
	}

	if err := svc.Delete(context.Background(), second.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), second.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCarouselService_Create_RequiresImageURL(t *testing.T) {
	svc := NewCarouselService(&stubCarouselRepo{}, nil, 0, discardLogger)

	if _, err := svc.Create(context.Background(), ports.CreateCarouselImageInput{Title: "no url"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCarouselService_PresignUpload(t *testing.T) {
	presigner := &stubPresigner{}
	svc := NewCarouselService(&stubCarouselRepo{}, presigner, 5*time.Minute, discardLogger)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	up, err := svc.PresignUpload(context.Background(), "image/png")
	if err != nil {
		t.Fatalf("PresignUpload: %v", err)
	}
	if !strings.HasPrefix(up.Key, "carousel/") || !strings.HasSuffix(up.Key, ".png") {
		t.Fatalf("unexpected key: %s", up.Key)
	}
	if presigner.lastKey != up.Key || presigner.lastContentType != "image/png" || presigner.lastTTL != 5*time.Minute {
		t.Fatalf("presigner called with %q %q %v", presigner.lastKey, presigner.lastContentType, presigner.lastTTL)
	}
	if up.Headers["Content-Type"] != "image/png" {
		t.Fatalf("upload must carry the content type header, got %v", up.Headers)
	}
	if up.PublicURL != "https://cdn.example.test/"+up.Key {
		t.Fatalf("unexpected public url: %s", up.PublicURL)
	}
	if !up.ExpiresAt.Equal(now.Add(5 * time.Minute)) {
		t.Fatalf("unexpected expiry: %v", up.ExpiresAt)
	}

	again, _ := svc.PresignUpload(context.Background(), "image/png")
	if again.Key == up.Key {
		t.Fatal("each upload must get a fresh key")
	}
}

func TestCarouselService_PresignUpload_Errors(t *testing.T) {
	disabled := NewCarouselService(&stubCarouselRepo{}, nil, 0, discardLogger)
	if _, err := disabled.PresignUpload(context.Background(), "image/png"); !errors.Is(err, domain.ErrUploadsDisabled) {
		t.Fatalf("expected ErrUploadsDisabled, got %v", err)
	}

	svc := NewCarouselService(&stubCarouselRepo{}, &stubPresigner{}, 0, discardLogger)
	if _, err := svc.PresignUpload(context.Background(), "application/pdf"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	failing := NewCarouselService(&stubCarouselRepo{}, &stubPresigner{err: errors.New("no creds")}, 0, discardLogger)
	if _, err := failing.PresignUpload(context.Background(), "image/jpeg"); err == nil {
		t.Fatal("expected presigner error")
	}
}

func TestCarouselService_Create_ChecksUploadedContentType(t *testing.T) {
	presigner := &stubPresigner{stored: map[string]string{
		"carousel/ok.png":  "image/png",
		"carousel/bad.png": "text/html",
	}}
	repo := &stubCarouselRepo{}
	svc := NewCarouselService(repo, presigner, 0, discardLogger)
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateCarouselImageInput{ImageURL: "https://cdn.example.test/carousel/ok.png"}); err != nil {
		t.Fatalf("Create with stored image: %v", err)
	}

	for _, imageURL := range []string{
		"https://cdn.example.test/carousel/bad.png",
		"https://cdn.example.test/carousel/missing.png",
	} {
		if _, err := svc.Create(ctx, ports.CreateCarouselImageInput{ImageURL: imageURL}); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", imageURL, err)
		}
	}
	if len(repo.imgs) != 1 {
		t.Fatalf("rejected uploads must not be stored, got %d slides", len(repo.imgs))
	}

	// URLs outside the upload bucket are not looked up.
	presigner.heads = nil
	if _, err := svc.Create(ctx, ports.CreateCarouselImageInput{ImageURL: "https://img.example.org/carousel/x.png"}); err != nil {
		t.Fatalf("Create with external image: %v", err)
	}
	if len(presigner.heads) != 0 {
		t.Fatalf("external url must not be checked, got %v", presigner.heads)
	}
}

func TestCarouselService_Create_UploadLookupError(t *testing.T) {
	svc := NewCarouselService(&stubCarouselRepo{}, &stubPresigner{headErr: errors.New("timeout")}, 0, discardLogger)

	_, err := svc.Create(context.Background(), ports.CreateCarouselImageInput{ImageURL: "https://cdn.example.test/carousel/a.jpg"})
	if err == nil || errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected a non-validation error, got %v", err)
	}
}
