package handlers

import (
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jmoiron/sqlx"

	"motortrade/internal/auth"
	"motortrade/internal/config"
	"motortrade/internal/repos"
	"motortrade/internal/services"
)

type Deps struct {
	AccountHandler   *AccountHandler
	InventoryHandler *InventoryHandler
	CartHandler      *CartHandler
	CheckoutHandler  *CheckoutHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, issuer *auth.Issuer, store *session.Store) *Deps {
	accountRepo := repos.NewAccountRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	cartRepo := repos.NewCartRepo(db)

	accountSvc := services.NewAccountService(accountRepo)
	catalogSvc := services.NewCatalogService(invRepo)
	cartSvc := services.NewCartService(cartRepo, invRepo, cfg.TaxRate)
	checkoutSvc := services.NewCheckoutService(cartRepo, cfg.TaxRate)
	adminSvc := services.NewAdminService(invRepo, accountRepo, cartRepo)

	return &Deps{
		AccountHandler:   &AccountHandler{Accounts: accountSvc, Issuer: issuer},
		InventoryHandler: &InventoryHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc, Store: store},
		CheckoutHandler:  &CheckoutHandler{Checkout: checkoutSvc},
		AdminHandler:     &AdminHandler{Admin: adminSvc},
	}
}
