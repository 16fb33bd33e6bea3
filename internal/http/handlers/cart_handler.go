package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	applog "motortrade/internal/log"
	"motortrade/internal/services"
	"motortrade/internal/sessioncart"
	"motortrade/internal/validate"
)

const cartSessionKey = "cart"

type CartHandler struct {
	Cart  *services.CartService
	Store *session.Store
}

func (h *CartHandler) sessionCart(c *fiber.Ctx) (*session.Session, *sessioncart.Cart, error) {
	sess, err := h.Store.Get(c)
	if err != nil {
		return nil, nil, err
	}
	raw, _ := sess.Get(cartSessionKey).(string)
	return sess, sessioncart.Decode(raw), nil
}

func saveSessionCart(sess *session.Session, cart *sessioncart.Cart) error {
	sess.Set(cartSessionKey, cart.Encode())
	return sess.Save()
}

// ---------- Authenticated API (persisted cart) ----------

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var body struct {
		InvID    string   `json:"invId"`
		Quantity *int     `json:"quantity"`
		Name     string   `json:"name"`
		Price    *float64 `json:"price"`
		Image    string   `json:"image"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	invID, okID := validate.ID(body.InvID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Missing or invalid item id.")
	}
	qty := 1
	if body.Quantity != nil {
		qty = *body.Quantity
	}

	sess, sc, err := h.sessionCart(c)
	if err != nil {
		return respondErr(c, err)
	}

	claims := CurrentClaims(c)
	out, err := h.Cart.Add(claims.AccountID(), invID, qty,
		services.FallbackInfo{Name: body.Name, Price: body.Price, Image: body.Image}, sc)
	if err != nil {
		return respondErr(c, err)
	}

	if out.Fallback {
		if err := saveSessionCart(sess, sc); err != nil {
			return respondErr(c, err)
		}
		applog.Security(c, "cart.fallback", map[string]any{"inv_id": invID, "qty": qty})
		return ok(c, fiber.Map{"fallback": true, "message": out.Message})
	}
	return ok(c, fiber.Map{"item": out.Line})
}

func (h *CartHandler) Items(c *fiber.Ctx) error {
	claims := CurrentClaims(c)
	lines, totals, err := h.Cart.List(claims.AccountID())
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, fiber.Map{
		"items":    lines,
		"subtotal": totals.Subtotal,
		"tax":      totals.Tax,
		"total":    totals.Total,
	})
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	var body struct {
		InvID    string `json:"invId"`
		Quantity *int   `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if body.Quantity == nil {
		return fail(c, fiber.StatusBadRequest, "Invalid quantity.")
	}
	invID, okID := validate.ID(body.InvID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Missing or invalid item id.")
	}

	claims := CurrentClaims(c)
	line, removed, err := h.Cart.UpdateQuantity(claims.AccountID(), invID, *body.Quantity)
	if err != nil {
		return respondErr(c, err)
	}
	if removed {
		return ok(c, fiber.Map{"removed": true})
	}
	return ok(c, fiber.Map{"item": line})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var body struct {
		InvID string `json:"invId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	invID, okID := validate.ID(body.InvID)
	if !okID {
		return fail(c, fiber.StatusBadRequest, "Missing or invalid item id.")
	}

	claims := CurrentClaims(c)
	if err := h.Cart.Remove(claims.AccountID(), invID); err != nil {
		return respondErr(c, err)
	}
	return ok(c, nil)
}

func (h *CartHandler) Count(c *fiber.Ctx) error {
	claims := CurrentClaims(c)
	n, err := h.Cart.Count(claims.AccountID())
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, fiber.Map{"count": n})
}

// ---------- Guest session cart (form posts, browser redirects) ----------

func (h *CartHandler) ViewSession(c *fiber.Ctx) error {
	_, sc, err := h.sessionCart(c)
	if err != nil {
		return respondErr(c, err)
	}
	totals := services.CalcTotals(sc.Subtotal(), h.Cart.TaxRate)
	items := sc.Lines
	if items == nil {
		items = []sessioncart.Line{}
	}
	return ok(c, fiber.Map{
		"items":    items,
		"subtotal": totals.Subtotal,
		"tax":      totals.Tax,
		"total":    totals.Total,
	})
}

func (h *CartHandler) AddSession(c *fiber.Ctx) error {
	invID, okID := validate.ID(c.FormValue("invId"))
	if !okID {
		return c.Redirect("/cart")
	}
	qty, err := strconv.Atoi(c.FormValue("quantity", "1"))
	if err != nil || qty < 1 {
		qty = 1
	}
	price, _ := strconv.ParseFloat(c.FormValue("price", "0"), 64)

	sess, sc, err := h.sessionCart(c)
	if err != nil {
		return respondErr(c, err)
	}
	sc.Add(sessioncart.Line{
		InvID:    invID,
		Name:     c.FormValue("name"),
		Price:    price,
		Image:    c.FormValue("image"),
		Quantity: qty,
	})
	if err := saveSessionCart(sess, sc); err != nil {
		return respondErr(c, err)
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) UpdateSession(c *fiber.Ctx) error {
	invID, okID := validate.ID(c.FormValue("invId"))
	qty, err := strconv.Atoi(c.FormValue("quantity"))
	if !okID || err != nil || qty < 0 {
		return c.Redirect("/cart")
	}

	sess, sc, err := h.sessionCart(c)
	if err != nil {
		return respondErr(c, err)
	}
	if sc.SetQuantity(invID, qty) {
		if err := saveSessionCart(sess, sc); err != nil {
			return respondErr(c, err)
		}
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) RemoveSession(c *fiber.Ctx) error {
	invID, okID := validate.ID(c.FormValue("invId"))
	if !okID {
		return c.Redirect("/cart")
	}

	sess, sc, err := h.sessionCart(c)
	if err != nil {
		return respondErr(c, err)
	}
	sc.Remove(invID)
	if err := saveSessionCart(sess, sc); err != nil {
		return respondErr(c, err)
	}
	return c.Redirect("/cart")
}
