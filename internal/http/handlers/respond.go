package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "motortrade/internal/log"
	"motortrade/internal/services"
)

func ok(c *fiber.Ctx, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["success"] = true
	return c.JSON(data)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// validationFail returns the field-level error list shape clients
// expect from the register/update/inventory forms.
func validationFail(c *fiber.Ctx, msgs []string) error {
	errs := make([]fiber.Map, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, fiber.Map{"msg": m})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// respondErr maps service errors onto HTTP statuses with client-safe
// messages. Anything unmapped logs server-side and stays generic.
func respondErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrBadCreds):
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, services.ErrEmailTaken):
		return fail(c, fiber.StatusBadRequest, "Email address is already registered. Please use a different email or log in.")
	case errors.Is(err, services.ErrClassificationExists):
		return fail(c, fiber.StatusBadRequest, "Classification already exists.")
	case errors.Is(err, services.ErrInvalidQuantity):
		return fail(c, fiber.StatusBadRequest, "Invalid quantity.")
	case errors.Is(err, services.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "Item not found.")
	case errors.Is(err, services.ErrEmptyCart):
		return fail(c, fiber.StatusBadRequest, "Your cart is empty.")
	case errors.Is(err, services.ErrStoreUnavailable):
		return fail(c, fiber.StatusServiceUnavailable, "Database temporarily unavailable. Please try again later.")
	case errors.Is(err, services.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "Admin access required. You do not have permission to perform this action.")
	default:
		applog.Error(c, "server.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "An unexpected error occurred. Please try again.")
	}
}
