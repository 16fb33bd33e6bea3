package handlers

import (
	"github.com/gofiber/fiber/v2"

	"motortrade/internal/services"
)

type AdminHandler struct {
	Admin *services.AdminService
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Admin.Dashboard()
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, fiber.Map{"stats": stats})
}
