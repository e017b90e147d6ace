package api

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/folio-labs/portfolio-api/docs"
	"github.com/folio-labs/portfolio-api/internal/api/handler"
	"github.com/folio-labs/portfolio-api/internal/api/middleware"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

// Services groups the application services the routes delegate to.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Messages ports.MessageService
	Projects ports.ProjectService
	Carousel ports.CarouselService
}

// RouterConfig carries everything NewRouter needs to assemble the API.
type RouterConfig struct {
	Services Services
	Verifier ports.TokenVerifier
	Log      zerolog.Logger

	SessionSecret       string
	SecureCookies       bool
	CORSAllowOrigins    []string
	CarouselRequireAuth bool

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	HealthChecks []handler.HealthCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	registerer := cfg.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	origins := cfg.CORSAllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{middleware.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(session.Middleware(store))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portfolio",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	auth := middleware.Auth(cfg.Verifier)
	carouselGate := middleware.Optional(cfg.CarouselRequireAuth, auth)

	authHandler := handler.NewAuthHandler(cfg.Services.Auth)
	userHandler := handler.NewUserHandler(cfg.Services.Users)
	messageHandler := handler.NewMessageHandler(cfg.Services.Messages)
	projectHandler := handler.NewProjectHandler(cfg.Services.Projects)
	carouselHandler := handler.NewCarouselHandler(cfg.Services.Carousel)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.PUT("/settings", authHandler.UpdateSettings, auth)

	// --- Users ---
	e.GET("/users", userHandler.List, auth)
	e.DELETE("/users/:id", userHandler.Delete, auth)

	// --- Messages (create is public: it is the contact form) ---
	e.GET("/messages", messageHandler.List, auth)
	e.POST("/messages", messageHandler.Create)
	e.DELETE("/messages/:id", messageHandler.Delete, auth)

	// --- Projects ---
	e.GET("/projects", projectHandler.List)
	e.GET("/projects/:id", projectHandler.Get)
	e.POST("/projects", projectHandler.Create, auth)
	e.PUT("/projects/:id", projectHandler.Update, auth)
	e.DELETE("/projects/:id", projectHandler.Delete, auth)

	// --- Carousel ---
	e.GET("/carousel", carouselHandler.List)
	e.POST("/carousel", carouselHandler.Create, carouselGate)
	e.DELETE("/carousel/:id", carouselHandler.Delete, carouselGate)
	e.POST("/carousel/uploads", carouselHandler.CreateUpload, auth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured access-log line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				ev = log.Warn().Err(v.Error)
			}
			ev = ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP)
			if id, _ := c.Get(middleware.ContextKeyUserID).(string); id != "" {
				ev = ev.Str("user_id", id)
			}
			ev.Msg("request")
			return nil
		},
	})
}
