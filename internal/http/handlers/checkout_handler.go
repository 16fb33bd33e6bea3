package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "motortrade/internal/log"
	"motortrade/internal/services"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

func (h *CheckoutHandler) Process(c *fiber.Ctx) error {
	claims := CurrentClaims(c)

	conf, err := h.Checkout.Process(claims.AccountID())
	if err != nil {
		return respondErr(c, err)
	}

	applog.Audit(c, "checkout.complete", map[string]any{"total": conf.OrderTotal, "lines": conf.ItemCount})
	return ok(c, fiber.Map{
		"message":    "Order received! You will receive an email confirmation shortly.",
		"orderTotal": conf.OrderTotal,
		"userEmail":  claims.Email,
		"itemCount":  conf.ItemCount,
	})
}
