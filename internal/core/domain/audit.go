package domain

import "time"

// AuthEventType classifies an entry in the authentication audit trail.
type AuthEventType string

const (
	AuthEventRegister       AuthEventType = "register"
	AuthEventLoginSuccess   AuthEventType = "login_success"
	AuthEventLoginFailure   AuthEventType = "login_failure"
	AuthEventSettingsUpdate AuthEventType = "settings_update"
)

// AuthEvent records a credential-related action. UserID is empty when the
// actor could not be resolved (e.g. a login for an unknown username).
type AuthEvent struct {
	Type       AuthEventType
	Username   string
	UserID     string
	RemoteIP   string
	RequestID  string
	OccurredAt time.Time
}
