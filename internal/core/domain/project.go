package domain

import "time"

// Project is a portfolio catalog entry.
type Project struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url,omitempty"`
	Link          string    `json:"link,omitempty"`
	RepositoryURL string    `json:"repository_url,omitempty"`
	Technologies  []string  `json:"technologies"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
