package ports

import "context"

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// SettingsInput replaces a user's email and password together.
type SettingsInput struct {
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) error
	Login(ctx context.Context, username, password string) (string, error)
	UpdateSettings(ctx context.Context, userID string, input SettingsInput) error
}
