package ports

// PasswordHasher produces and checks salted one-way password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. A mismatch is
	// (false, nil); an unreadable digest is (false, err).
	Verify(plaintext, digest string) (bool, error)
}

// TokenIssuer mints signed, time-limited bearer tokens.
type TokenIssuer interface {
	Issue(subjectID string) (string, error)
}

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subjectID string, err error)
}
