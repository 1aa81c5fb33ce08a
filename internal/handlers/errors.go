package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperrors"
)

// statusFromError maps the service error taxonomy to HTTP status codes.
// Anything outside the taxonomy is a storage/internal failure and maps to 500;
// its detail is logged by the caller, never sent to the client.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrEmptyCart):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// clientMessage returns the error text safe to show a client: taxonomy errors
// describe themselves, everything else collapses to a generic message.
func clientMessage(err error, generic string) string {
	if statusFromError(err) == fiber.StatusInternalServerError {
		return generic
	}
	return err.Error()
}
