package domain

import "time"

// CarouselImage is one slide of the landing-page carousel. Slides are shown
// in ascending Order.
type CarouselImage struct {
	ID          string    `json:"_id"`
	ImageURL    string    `json:"image_url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

// Upload describes a presigned object-storage upload slot. The PUT must carry
// Headers verbatim.
type Upload struct {
	Key       string            `json:"key"`
	UploadURL string            `json:"upload_url"`
	Headers   map[string]string `json:"headers"`
	PublicURL string            `json:"public_url"`
	ExpiresAt time.Time         `json:"expires_at"`
}
