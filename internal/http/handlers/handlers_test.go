package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jmoiron/sqlx"

	"motortrade/internal/auth"
	"motortrade/internal/config"
	"motortrade/internal/http/handlers"
	"motortrade/internal/repos"
)

// newTestApp wires the real handlers over an in-memory database, with
// the same routes main registers (rate limiters left off).
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{TaxRate: 0.08875}
	issuer := auth.NewIssuer("test-secret", time.Hour)
	store := session.New(session.Config{KeyLookup: "cookie:sid", CookieHTTPOnly: true})

	deps := handlers.NewDeps(db, cfg, issuer, store)
	requireUser := handlers.RequireUser(issuer)

	app := fiber.New()

	account := app.Group("/account")
	account.Post("/register", deps.AccountHandler.Register)
	account.Post("/login", deps.AccountHandler.Login)
	account.Post("/logout", deps.AccountHandler.Logout)
	account.Get("/", requireUser, deps.AccountHandler.Detail)
	account.Put("/update", requireUser, deps.AccountHandler.Update)
	account.Put("/update-password", requireUser, deps.AccountHandler.UpdatePassword)

	inv := app.Group("/inv")
	inv.Get("/", deps.InventoryHandler.List)
	inv.Get("/type/:classificationId", deps.InventoryHandler.ByClassification)
	inv.Get("/detail/:id", deps.InventoryHandler.Detail)
	inv.Post("/classification", requireUser, handlers.RequireAdmin(), deps.InventoryHandler.AddClassification)
	inv.Post("/", requireUser, handlers.RequireAdmin(), deps.InventoryHandler.AddVehicle)

	app.Get("/cart", deps.CartHandler.ViewSession)
	app.Post("/cart/add-session", deps.CartHandler.AddSession)
	app.Post("/cart/update-session", deps.CartHandler.UpdateSession)
	app.Post("/cart/remove-session", deps.CartHandler.RemoveSession)

	app.Post("/cart/add", requireUser, deps.CartHandler.Add)
	app.Get("/cart/items", requireUser, deps.CartHandler.Items)
	app.Post("/cart/update", requireUser, deps.CartHandler.Update)
	app.Delete("/cart/remove", requireUser, deps.CartHandler.Remove)
	app.Get("/cart/count", requireUser, deps.CartHandler.Count)

	app.Post("/checkout/process", requireUser, deps.CheckoutHandler.Process)

	admin := app.Group("/admin", requireUser, handlers.RequireAdmin())
	admin.Get("/dashboard", deps.AdminHandler.Dashboard)

	return app, db
}

func jsonReq(method, target, body, token string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

// loginToken logs a seeded account in and returns its bearer token.
func loginToken(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, err := app.Test(jsonReq("POST", "/account/login", `{"email":"`+email+`","password":"`+password+`"}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	tok, _ := body["token"].(string)
	if tok == "" {
		t.Fatalf("no token in login response: %v", body)
	}
	return tok
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
