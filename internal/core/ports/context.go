package ports

import "context"

type ctxKey int

const (
	subjectKey ctxKey = iota
	requestMetaKey
)

// RequestMeta is transport metadata carried into the service layer for
// auditing.
type RequestMeta struct {
	RemoteIP  string
	RequestID string
}

// WithSubject returns a copy of ctx carrying the verified token subject.
func WithSubject(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, subjectKey, subjectID)
}

// SubjectFrom returns the verified token subject, if any.
func SubjectFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(subjectKey).(string)
	return id, ok && id != ""
}

func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey, meta)
}

func RequestMetaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey).(RequestMeta)
	return meta
}
