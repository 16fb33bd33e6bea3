package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"motortrade/internal/auth"
	applog "motortrade/internal/log"
	"motortrade/internal/services"
	"motortrade/internal/validate"
)

type AccountHandler struct {
	Accounts *services.AccountService
	Issuer   *auth.Issuer
}

type accountPayload struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var body struct {
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	// Older clients send a single username instead of first/last.
	if body.FirstName == "" {
		body.FirstName = body.Username
	}
	if body.LastName == "" {
		body.LastName = body.FirstName
	}

	var msgs []string
	first, okFirst := validate.Name(body.FirstName)
	if !okFirst {
		msgs = append(msgs, "Username must be at least 3 characters long")
	}
	last, okLast := validate.Name(body.LastName)
	if !okLast {
		msgs = append(msgs, "Last name must be at least 3 characters long")
	}
	email, okEmail := validate.Email(body.Email)
	if !okEmail {
		msgs = append(msgs, "Please provide a valid email address")
	}
	if !validate.Password(body.Password) {
		msgs = append(msgs, "Password must be at least 8 characters long with an uppercase letter and a number")
	}
	if len(msgs) > 0 {
		return validationFail(c, msgs)
	}

	a, err := h.Accounts.Register(first, last, email, body.Password)
	if err != nil {
		return respondErr(c, err)
	}

	token, _, err := h.Issuer.Issue(a.ID, a.Email, a.Role)
	if err != nil {
		applog.Error(c, "auth.token.issue", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Server configuration error. Please contact support.")
	}

	applog.Audit(c, "account.register", map[string]any{"email": a.Email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully. You are now logged in.",
		"token":   token,
		"user":    accountPayload{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, Email: a.Email},
	})
}

func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if body.Email == "" || body.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Email and password are required.")
	}

	a, err := h.Accounts.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "auth.login.fail", map[string]any{"email": body.Email})
		}
		return respondErr(c, err)
	}

	token, _, err := h.Issuer.Issue(a.ID, a.Email, a.Role)
	if err != nil {
		applog.Error(c, "auth.token.issue", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Server configuration error. Please contact support.")
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": a.Email})
	return ok(c, fiber.Map{
		"message": "Login successful.",
		"token":   token,
		"user":    accountPayload{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, Email: a.Email},
	})
}

// Logout is a client-side no-op: the token is stateless, so the client
// simply discards it. The endpoint exists for audit logging.
func (h *AccountHandler) Logout(c *fiber.Ctx) error {
	applog.Audit(c, "auth.logout", nil)
	return ok(c, fiber.Map{"message": "Logout successful. Please delete your token from client storage."})
}

func (h *AccountHandler) Detail(c *fiber.Ctx) error {
	claims := CurrentClaims(c)
	a, err := h.Accounts.Get(claims.AccountID())
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, fiber.Map{"user": accountPayload{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, Email: a.Email}})
}

func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var body struct {
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
		Email     string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	var msgs []string
	first, okFirst := validate.Name(body.FirstName)
	if !okFirst {
		msgs = append(msgs, "First name must be at least 3 characters long")
	}
	last, okLast := validate.Name(body.LastName)
	if !okLast {
		msgs = append(msgs, "Last name must be at least 3 characters long")
	}
	email, okEmail := validate.Email(body.Email)
	if !okEmail {
		msgs = append(msgs, "Please provide a valid email address")
	}
	if len(msgs) > 0 {
		return validationFail(c, msgs)
	}

	claims := CurrentClaims(c)
	a, err := h.Accounts.Update(claims.AccountID(), first, last, email)
	if err != nil {
		return respondErr(c, err)
	}

	applog.Audit(c, "account.update", map[string]any{"email": a.Email})
	return ok(c, fiber.Map{
		"message": "Account updated successfully.",
		"user":    accountPayload{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, Email: a.Email},
	})
}

func (h *AccountHandler) UpdatePassword(c *fiber.Ctx) error {
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if !validate.Password(body.NewPassword) {
		return validationFail(c, []string{"Password must be at least 8 characters long with an uppercase letter and a number"})
	}

	claims := CurrentClaims(c)
	if err := h.Accounts.UpdatePassword(claims.AccountID(), body.CurrentPassword, body.NewPassword); err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "account.password.fail", nil)
			return fail(c, fiber.StatusUnauthorized, "Current password is incorrect.")
		}
		return respondErr(c, err)
	}

	applog.Audit(c, "account.password.update", nil)
	return ok(c, fiber.Map{"message": "Password updated successfully."})
}
