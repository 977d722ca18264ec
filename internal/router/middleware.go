package router

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"nestify/internal/auth"
	apperrors "nestify/internal/errors"
	"nestify/internal/handler"
	"nestify/internal/logging"
	"nestify/internal/metrics"
	"nestify/internal/model"
	"nestify/internal/service"
)

// Authenticate resolves the verified bearer token to a live user and stores
// both on the context. It must run after the echo-jwt middleware.
func Authenticate(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(tokenContextKey).(*auth.Claims)
			if !ok {
				return apperrors.ErrUnauthorized
			}

			ctx := c.Request().Context()
			user, err := authService.Authenticate(ctx, claims)
			if err != nil {
				return err
			}

			c.Set(handler.ActorKey, user)
			c.Set(handler.ClaimsKey, claims)

			l := logging.Ctx(ctx).With().Str("user_id", user.ID.String()).Logger()
			c.SetRequest(c.Request().WithContext(logging.WithContext(ctx, l)))
			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin actors. It must run after Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, _ := c.Get(handler.ActorKey).(*model.User)
			if err := service.RequireAdmin(u); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequestLogger emits one structured line per request and attaches a
// request-scoped logger to the context.
func RequestLogger() echo.MiddlewareFunc {
	logRequest := middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logging.Info()
			if v.Status >= http.StatusInternalServerError {
				event = logging.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		inner := func(c echo.Context) error {
			ctx := c.Request().Context()
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			l := logging.Logger().With().Str("request_id", rid).Logger()
			c.SetRequest(c.Request().WithContext(logging.WithContext(ctx, l)))
			return next(c)
		}
		return logRequest(inner)
	}
}

// Metrics records request counts and latencies per route template.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordHTTPRequest(c.Request().Method, route, strconv.Itoa(c.Response().Status), time.Since(start))
			return nil
		}
	}
}

// ErrorHandler renders every error as {message, code, error?}. The cause is
// included only when withDetail is true.
func ErrorHandler(withDetail bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := toHTTPError(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logging.Ctx(c.Request().Context()).Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(httpErr.StatusCode)
		} else {
			writeErr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse(withDetail))
		}
		if writeErr != nil {
			logging.Ctx(c.Request().Context()).Warn().Err(writeErr).Msg("failed to write error response")
		}
	}
}

var echoStatusCodes = map[int]string{
	http.StatusBadRequest:            "BAD_REQUEST",
	http.StatusUnauthorized:          "UNAUTHORIZED",
	http.StatusForbidden:             "FORBIDDEN",
	http.StatusNotFound:              "NOT_FOUND",
	http.StatusMethodNotAllowed:      "METHOD_NOT_ALLOWED",
	http.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	http.StatusUnsupportedMediaType:  "UNSUPPORTED_MEDIA_TYPE",
	http.StatusTooManyRequests:       "RATE_LIMITED",
	http.StatusServiceUnavailable:    "SERVICE_UNAVAILABLE",
}

// toHTTPError classifies domain errors first, then echo's own errors such
// as unknown routes and rate limiting.
func toHTTPError(err error) *apperrors.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.Code != "INTERNAL_ERROR" {
		return httpErr
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return httpErr
	}
	code, ok := echoStatusCodes[he.Code]
	if !ok {
		code = "HTTP_ERROR"
	}
	out := apperrors.NewHTTPError(he.Code, fmt.Sprint(he.Message), code)
	if he.Internal != nil {
		out.Detail = he.Internal.Error()
	}
	return out
}
