package http

import (
	"context"
	"errors"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/observability"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(observability.RequestLogger(logger, metrics))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				status, code, message, details := classify(err)
				if metrics != nil {
					metrics.RecordError(c.Route().Path, c.Method(), code)
				}
				fields := []zap.Field{
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.String("code", code),
				}
				if len(details) > 0 {
					fields = append(fields, zap.Any("details", details))
				}
				switch {
				case status >= fiber.StatusInternalServerError:
					logger.Error("request failed", append(fields, zap.Error(err))...)
				case len(details) > 0:
					logger.Warn("request rejected", fields...)
				}
				c.Status(status)
				_ = c.JSON(dto.ErrorResponse{Error: message})
				err = nil
			}
		}()
		return c.Next()
	}
}

// classify maps err to the HTTP status, error code, client message and any
// details worth logging.
func classify(err error) (int, string, string, map[string]any) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, "HTTP_" + strconv.Itoa(fiberErr.Code), fiberErr.Message, nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusGatewayTimeout, "TIMEOUT", "request timed out", nil
	}

	domainErr := apperrors.ToDomainError(err)
	message := domainErr.Message
	if domainErr.Code == apperrors.CodeInternal {
		message = "internal server error"
	}
	return domainErr.HTTPStatus, domainErr.Code, message, domainErr.Details
}
