package handlers

import (
	"errors"

	"merchantgate/internal/identity"
	"merchantgate/internal/services"
	"merchantgate/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps an error from the service layer to a status code and body.
// Unexpected errors are logged and answered with a generic message.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var (
		callerErr   *services.CallerInputError
		providerErr *identity.ProviderError
	)

	switch {
	case errors.Is(err, services.ErrAccessTokenRequired):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: services.ErrAccessTokenRequired.Error()})
	case errors.As(err, &callerErr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: callerErr.Error()})
	case errors.As(err, &providerErr):
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Error interacting with Cognito: " + providerErr.Message,
		})
	case errors.Is(err, identity.ErrMissingSubject):
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Internal server error"})
}

// ErrorHandler renders errors returned by fiber itself (unknown route, oversized body) in the same shape.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message})
		}
		return respondError(c, log, err)
	}
}
