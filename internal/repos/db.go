package repos

import (
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens the storefront database. A postgres:// DSN goes through
// pgx; anything else is treated as a sqlite file path (the dev and test
// default). Repos write '?' placeholders and Rebind per driver.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := open(dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Baseline catalog + accounts (idempotent; safe to run every start)
	if err := seedCatalog(db); err != nil {
		return nil, err
	}
	if err := seedAccounts(db); err != nil {
		return nil, err
	}

	return db, nil
}

func open(dsn string) (*sqlx.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, err
		}
		// Fail fast on startup if the server is unreachable
		cfg.ConnectTimeout = 5 * time.Second

		db := sqlx.NewDb(stdlib.OpenDB(*cfg), "pgx")
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		return db, nil
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Single writer; also keeps :memory: databases on one connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Accounts
CREATE TABLE IF NOT EXISTS account(
  account_id TEXT PRIMARY KEY,
  account_firstname TEXT NOT NULL,
  account_lastname TEXT NOT NULL,
  account_email TEXT NOT NULL UNIQUE,
  account_password TEXT NOT NULL,
  account_type TEXT NOT NULL DEFAULT 'Client' CHECK (account_type IN ('Client','Admin')),
  created_at TEXT
);

-- Vehicle classifications
CREATE TABLE IF NOT EXISTS classification(
  classification_id TEXT PRIMARY KEY,
  classification_name TEXT NOT NULL UNIQUE
);

-- Vehicle inventory
CREATE TABLE IF NOT EXISTS inventory(
  inv_id TEXT PRIMARY KEY,
  classification_id TEXT NOT NULL REFERENCES classification(classification_id) ON DELETE RESTRICT,
  inv_make TEXT NOT NULL,
  inv_model TEXT NOT NULL,
  inv_year INTEGER NOT NULL,
  inv_description TEXT,
  inv_image TEXT,
  inv_thumbnail TEXT,
  inv_price NUMERIC NOT NULL CHECK (inv_price >= 0),
  inv_miles INTEGER NOT NULL DEFAULT 0,
  inv_color TEXT,
  created_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_inventory_classification ON inventory(classification_id);

-- Persisted carts, one row per (account, vehicle)
CREATE TABLE IF NOT EXISTS cart(
  cart_id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL REFERENCES account(account_id) ON DELETE CASCADE,
  inv_id TEXT NOT NULL REFERENCES inventory(inv_id) ON DELETE RESTRICT,
  cart_quantity INTEGER NOT NULL CHECK (cart_quantity >= 1),
  cart_unit_price NUMERIC NOT NULL,
  created_at TEXT,
  UNIQUE(account_id, inv_id)
);
CREATE INDEX IF NOT EXISTS idx_cart_account ON cart(account_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedCatalog(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM classification`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo classifications/inventory")

	now := time.Now().UTC().Format(time.RFC3339)

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(tx.Rebind(`INSERT INTO classification(classification_id, classification_name) VALUES
	  ('custom','Custom'),
	  ('sedan','Sedan'),
	  ('suv','SUV'),
	  ('truck','Truck'),
	  ('sport','Sport')`))

	tx.MustExec(tx.Rebind(`INSERT INTO inventory
	  (inv_id, classification_id, inv_make, inv_model, inv_year, inv_description, inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, created_at)
	 VALUES
	  ('dmc-delorean','sport','DMC','DeLorean',1981,'Stainless body, gull-wing doors.','/images/vehicles/delorean.jpg','/images/vehicles/delorean-tn.jpg',35000,22120,'Silver',?),
	  ('jeep-wrangler','suv','Jeep','Wrangler',2019,'Small lift with big tires.','/images/vehicles/wrangler.jpg','/images/vehicles/wrangler-tn.jpg',28045,41205,'Yellow',?),
	  ('ford-crown-vic','sedan','Ford','Crown Victoria',2013,'Surplus patrol unit, spotlight included.','/images/vehicles/crwn-vic.jpg','/images/vehicles/crwn-vic-tn.jpg',10000,108247,'White',?),
	  ('gm-hummer','truck','GM','Hummer',2016,'Small interiors, huge everything else.','/images/vehicles/hummer.jpg','/images/vehicles/hummer-tn.jpg',58800,56564,'Yellow',?)`),
		now, now, now, now)

	return tx.Commit()
}

// seedAccounts ensures one Client and one Admin account exist (idempotent).
func seedAccounts(db *sqlx.DB) error {
	type acct struct {
		ID, First, Last, Email, Role, Hash string
	}
	mk := func(id, first, last, email, role, raw string) acct {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return acct{ID: id, First: first, Last: last, Email: email, Role: role, Hash: string(h)}
	}

	accounts := []acct{
		mk("a-basic", "Basic", "Client", "basic@motortrade.test", "Client", "Passw0rd!"),
		mk("a-admin", "Site", "Admin", "admin@motortrade.test", "Admin", "Passw0rd!"),
	}

	now := time.Now().UTC().Format(time.RFC3339)

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, a := range accounts {
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO account(account_id, account_firstname, account_lastname, account_email, account_password, account_type, created_at)
			VALUES(?,?,?,?,?,?,?)
			ON CONFLICT(account_email) DO NOTHING
		`), a.ID, a.First, a.Last, a.Email, a.Hash, a.Role, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}
