package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"nestify/internal/auth"
	"nestify/internal/config"
	apperrors "nestify/internal/errors"
	"nestify/internal/handler"
	"nestify/internal/service"
	"nestify/internal/validation"
)

const tokenContextKey = "token"

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Property     *handler.PropertyHandler
	RoomRequest  *handler.RoomRequestHandler
	Subscription *handler.SubscriptionHandler
	Admin        *handler.AdminHandler
}

// Deps are what the router needs besides the handlers.
type Deps struct {
	JWT         *auth.JWTService
	AuthService service.AuthService
	// HealthChecks are run by /healthz in order.
	HealthChecks []HealthCheck
}

// New builds an echo instance with every route registered.
func New(cfg *config.Config, deps Deps, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	Register(e, cfg, deps, h)
	return e
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, deps Deps, h Handlers) {
	e.Validator = validation.New()
	e.HTTPErrorHandler = ErrorHandler(!cfg.IsProduction())

	e.Use(middleware.RequestID())
	e.Use(Metrics())
	e.Use(RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: splitOrigins(cfg.CORSOrigin),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(middleware.BodyLimit("25M"))

	e.GET("/healthz", healthz(deps.HealthChecks))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	bearer := echojwt.WithConfig(echojwt.Config{
		ContextKey:  tokenContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (any, error) {
			return deps.JWT.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.Wrap(apperrors.ErrUnauthorized, "missing or invalid token", err)
		},
	})
	authed := []echo.MiddlewareFunc{bearer, Authenticate(deps.AuthService)}
	admin := []echo.MiddlewareFunc{bearer, Authenticate(deps.AuthService), RequireAdmin()}
	limited := authRateLimiter(cfg.RateLimitRPS)

	api := e.Group("/api")

	// User routes
	user := api.Group("/user")
	user.POST("/register", h.Auth.Register, limited)
	user.POST("/login", h.Auth.Login, limited)
	user.POST("/logout", h.Auth.Logout, authed...)
	user.PUT("/password", h.Auth.ChangePassword, authed...)
	user.GET("/profile", h.User.GetProfile, authed...)
	user.PUT("/profile", h.User.UpdateProfile, authed...)
	user.GET("/all", h.User.ListUsers, admin...)
	user.GET("/:id", h.User.GetUser, admin...)
	user.PUT("/:id", h.User.UpdateUser, admin...)
	user.DELETE("/:id", h.User.DeleteUser, admin...)

	// Property routes
	property := api.Group("/property")
	property.GET("", h.Property.ListProperties)
	property.GET("/search", h.Property.SearchProperties)
	property.GET("/mine", h.Property.MyProperties, authed...)
	property.GET("/:id", h.Property.GetProperty)
	property.POST("", h.Property.CreateProperty, authed...)
	property.PUT("/:id", h.Property.UpdateProperty, authed...)
	property.DELETE("/:id", h.Property.DeleteProperty, authed...)

	// Room request routes
	roomRequest := api.Group("/room-request")
	roomRequest.GET("", h.RoomRequest.ListRoomRequests)
	roomRequest.GET("/mine", h.RoomRequest.MyRoomRequests, authed...)
	roomRequest.GET("/:id", h.RoomRequest.GetRoomRequest)
	roomRequest.POST("", h.RoomRequest.CreateRoomRequest, authed...)
	roomRequest.PUT("/:id", h.RoomRequest.UpdateRoomRequest, authed...)
	roomRequest.DELETE("/:id", h.RoomRequest.DeleteRoomRequest, authed...)

	// Subscription routes
	subscription := api.Group("/subscription", authed...)
	subscription.GET("/status", h.Subscription.Status)
	subscription.POST("/purchase", h.Subscription.Purchase)
	subscription.POST("/cancel", h.Subscription.Cancel)

	// Admin routes
	api.GET("/admin/stats", h.Admin.Stats, admin...)
}

// HealthCheck is one dependency checked by /healthz. A failing Optional
// check reports the service as degraded instead of unavailable.
type HealthCheck struct {
	Name     string
	Check    func(ctx context.Context) error
	Optional bool
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthz(checks []HealthCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "ok"}
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		code := http.StatusOK
		for _, hc := range checks {
			err := hc.Check(ctx)
			if err == nil {
				resp.Checks[hc.Name] = "ok"
				continue
			}
			resp.Checks[hc.Name] = err.Error()
			if hc.Optional {
				if code == http.StatusOK {
					resp.Status = "degraded"
				}
				continue
			}
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, resp)
	}
}

// authRateLimiter limits login and registration attempts per client IP.
// A non-positive rps disables it.
func authRateLimiter(rps float64) echo.MiddlewareFunc {
	if rps <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(rps),
			Burst:     max(int(rps*2), 1),
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
		},
	})
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
