package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"motortrade/internal/domain"
	applog "motortrade/internal/log"
	"motortrade/internal/services"
	"motortrade/internal/validate"
)

type InventoryHandler struct {
	Catalog *services.CatalogService
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	vehicles, err := h.Catalog.ListAll()
	if err != nil {
		return respondErr(c, err)
	}
	classifications, err := h.Catalog.Classifications()
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, fiber.Map{"inventory": vehicles, "classifications": classifications})
}

func (h *InventoryHandler) ByClassification(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("classificationId"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid classification id.")
	}
	vehicles, err := h.Catalog.ListByClassification(id)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, fiber.Map{"inventory": vehicles})
}

func (h *InventoryHandler) Detail(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Invalid item id.")
	}
	v, err := h.Catalog.Detail(id)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, fiber.Map{"vehicle": v})
}

func (h *InventoryHandler) AddClassification(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"classification_name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	name, okName := validate.ClassificationName(body.Name)
	if !okName {
		return validationFail(c, []string{"Classification name can only contain letters, numbers, and spaces"})
	}

	cl, err := h.Catalog.AddClassification(name)
	if err != nil {
		return respondErr(c, err)
	}

	applog.Audit(c, "inventory.classification.add", map[string]any{"name": cl.Name})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "classification": cl})
}

func (h *InventoryHandler) AddVehicle(c *fiber.Ctx) error {
	var body struct {
		ClassificationID string  `json:"classification_id"`
		Make             string  `json:"inv_make"`
		Model            string  `json:"inv_model"`
		Year             int     `json:"inv_year"`
		Description      string  `json:"inv_description"`
		Image            string  `json:"inv_image"`
		Thumbnail        string  `json:"inv_thumbnail"`
		Price            float64 `json:"inv_price"`
		Miles            int     `json:"inv_miles"`
		Color            string  `json:"inv_color"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	var msgs []string
	classificationID, okClass := validate.ID(body.ClassificationID)
	if !okClass {
		msgs = append(msgs, "Valid classification must be selected")
	}
	mk, okMake := validate.Text(body.Make, 50)
	if !okMake {
		msgs = append(msgs, "Make must be between 1 and 50 characters")
	}
	model, okModel := validate.Text(body.Model, 50)
	if !okModel {
		msgs = append(msgs, "Model must be between 1 and 50 characters")
	}
	if !validate.Year(body.Year) {
		msgs = append(msgs, "Year must be a valid number between 1920 and 2100")
	}
	desc, okDesc := validate.Text(body.Description, 2000)
	if !okDesc {
		msgs = append(msgs, "Description must be between 1 and 2000 characters")
	}
	if !validate.Price(body.Price) {
		msgs = append(msgs, "Price must be a valid number")
	}
	if !validate.Miles(body.Miles) {
		msgs = append(msgs, "Miles must be a valid number")
	}
	if len(msgs) > 0 {
		return validationFail(c, msgs)
	}

	v := &domain.Vehicle{
		ID:               uuid.NewString(),
		ClassificationID: classificationID,
		Make:             mk,
		Model:            model,
		Year:             body.Year,
		Description:      desc,
		Image:            body.Image,
		Thumbnail:        body.Thumbnail,
		Price:            body.Price,
		Miles:            body.Miles,
		Color:            body.Color,
	}
	if err := h.Catalog.AddVehicle(v); err != nil {
		return respondErr(c, err)
	}

	applog.Audit(c, "inventory.vehicle.add", map[string]any{"inv_id": v.ID, "make": v.Make, "model": v.Model})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "vehicle": v})
}
