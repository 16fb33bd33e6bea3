package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"

	"motortrade/internal/auth"
	"motortrade/internal/config"
	"motortrade/internal/http/handlers"
	applog "motortrade/internal/log"
	"motortrade/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// Guest carts live in the session store, not the database, so they
	// keep working through a database outage.
	store := session.New(session.Config{
		KeyLookup:      "cookie:sid",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		Expiration:     24 * time.Hour,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "An unexpected error occurred. Please try again.",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.RateLimiter(60, time.Minute, "rate.global.hit",
		"Too many requests. Please try again later."))

	deps := handlers.NewDeps(db, cfg, issuer, store)
	requireUser := handlers.RequireUser(issuer)

	// Auth
	account := app.Group("/account")
	account.Post("/register", deps.AccountHandler.Register)
	account.Post("/login", handlers.RateLimiter(5, 10*time.Minute, "rate.login.hit",
		"Too many attempts. Please try again later."), deps.AccountHandler.Login)
	account.Post("/logout", deps.AccountHandler.Logout)
	account.Get("/", requireUser, deps.AccountHandler.Detail)
	account.Put("/update", requireUser, deps.AccountHandler.Update)
	account.Put("/update-password", requireUser, deps.AccountHandler.UpdatePassword)

	// Catalog
	inv := app.Group("/inv")
	inv.Get("/", deps.InventoryHandler.List)
	inv.Get("/type/:classificationId", deps.InventoryHandler.ByClassification)
	inv.Get("/detail/:id", deps.InventoryHandler.Detail)
	inv.Post("/classification", requireUser, handlers.RequireAdmin(), deps.InventoryHandler.AddClassification)
	inv.Post("/", requireUser, handlers.RequireAdmin(), deps.InventoryHandler.AddVehicle)

	// Guest session cart (browser forms)
	app.Get("/cart", deps.CartHandler.ViewSession)
	app.Post("/cart/add-session", deps.CartHandler.AddSession)
	app.Post("/cart/update-session", deps.CartHandler.UpdateSession)
	app.Post("/cart/remove-session", deps.CartHandler.RemoveSession)

	// Authenticated cart API. Middleware is attached per route so the
	// guest endpoints on the same prefix stay open.
	app.Post("/cart/add", requireUser, deps.CartHandler.Add)
	app.Get("/cart/items", requireUser, deps.CartHandler.Items)
	app.Post("/cart/update", requireUser, deps.CartHandler.Update)
	app.Delete("/cart/remove", requireUser, deps.CartHandler.Remove)
	app.Get("/cart/count", requireUser, deps.CartHandler.Count)

	// Checkout
	app.Post("/checkout/process", requireUser, deps.CheckoutHandler.Process)

	// Admin
	admin := app.Group("/admin", requireUser, handlers.RequireAdmin())
	admin.Get("/dashboard", deps.AdminHandler.Dashboard)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
