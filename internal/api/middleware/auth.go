package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
	"github.com/folio-labs/portfolio-api/internal/pkg/metrics"
)

const (
	// HeaderAuthorization carries the raw token, with no scheme prefix.
	HeaderAuthorization = "authorization"
	// ContextKeyUserID is the echo context key holding the token subject for
	// the access log. Handlers read it from the request context.
	ContextKeyUserID = "user_id"
)

// Auth admits a request only when the authorization header holds a token
// the verifier accepts. The subject is attached to both the echo context and
// the request context. Rejections are 403 with no further detail.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderAuthorization)
			if token == "" {
				metrics.AuthGateDecisionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrAccessDenied.Error())
			}

			subject, err := verifier.Verify(token)
			if err != nil {
				metrics.AuthGateDecisionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrInvalidToken.Error())
			}

			metrics.AuthGateDecisionsTotal.WithLabelValues("admitted").Inc()
			c.Set(ContextKeyUserID, subject)
			req := c.Request()
			c.SetRequest(req.WithContext(ports.WithSubject(req.Context(), subject)))

			return next(c)
		}
	}
}

// Optional applies mw only when enabled is true.
func Optional(enabled bool, mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if enabled {
		return mw
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
}
