package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

// ctxUserID returns the verified subject the Auth middleware put on the
// request context. Its absence means the route was mounted without the gate.
func ctxUserID(c echo.Context) (string, error) {
	id, ok := ports.SubjectFrom(c.Request().Context())
	if !ok {
		return "", echo.NewHTTPError(http.StatusForbidden, domain.ErrAccessDenied.Error())
	}
	return id, nil
}

// requestContext returns the request context carrying client address and
// request id for the audit trail.
func requestContext(c echo.Context) context.Context {
	return ports.WithRequestMeta(c.Request().Context(), ports.RequestMeta{
		RemoteIP:  c.RealIP(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
