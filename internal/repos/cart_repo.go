package repos

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is a persisted cart row joined with vehicle display fields.
type CartLine struct {
	CartID    string  `db:"cart_id" json:"cart_id"`
	InvID     string  `db:"inv_id" json:"inv_id"`
	Quantity  int     `db:"cart_quantity" json:"cart_quantity"`
	UnitPrice float64 `db:"cart_unit_price" json:"cart_unit_price"`
	Name      string  `db:"name" json:"name"`
	Thumbnail string  `db:"thumbnail" json:"thumbnail"`
}

// UpsertLine inserts a new (account, vehicle) row or increments the
// quantity of the existing one. The unit price is captured at first
// add and kept on conflicts.
func (r *CartRepo) UpsertLine(accountID, invID string, qty int, unitPrice float64) (*CartLine, error) {
	var row struct {
		CartID    string  `db:"cart_id"`
		InvID     string  `db:"inv_id"`
		Quantity  int     `db:"cart_quantity"`
		UnitPrice float64 `db:"cart_unit_price"`
	}
	err := r.db.Get(&row, r.db.Rebind(`
		INSERT INTO cart(cart_id, account_id, inv_id, cart_quantity, cart_unit_price, created_at)
		VALUES(?,?,?,?,?,?)
		ON CONFLICT(account_id, inv_id)
		DO UPDATE SET cart_quantity = cart.cart_quantity + excluded.cart_quantity
		RETURNING cart_id, inv_id, cart_quantity, cart_unit_price
	`), uuid.NewString(), accountID, invID, qty, unitPrice, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return &CartLine{CartID: row.CartID, InvID: row.InvID, Quantity: row.Quantity, UnitPrice: row.UnitPrice}, nil
}

func (r *CartRepo) ListByAccount(accountID string) ([]CartLine, error) {
	out := []CartLine{}
	err := r.db.Select(&out, r.db.Rebind(`
		SELECT c.cart_id, c.inv_id, c.cart_quantity, c.cart_unit_price,
		       (i.inv_make || ' ' || i.inv_model) AS name,
		       COALESCE(i.inv_thumbnail, i.inv_image, '') AS thumbnail
		FROM cart c JOIN inventory i ON i.inv_id = c.inv_id
		WHERE c.account_id = ?
		ORDER BY c.created_at DESC
	`), accountID)
	return out, err
}

// SetQuantity overwrites a line's quantity. sql.ErrNoRows passes
// through when the line does not exist.
func (r *CartRepo) SetQuantity(accountID, invID string, qty int) (*CartLine, error) {
	var row CartLine
	err := r.db.Get(&row, r.db.Rebind(`
		UPDATE cart
		SET cart_quantity = ?
		WHERE account_id = ? AND inv_id = ?
		RETURNING cart_id, inv_id, cart_quantity, cart_unit_price, '' AS name, '' AS thumbnail
	`), qty, accountID, invID)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CartRepo) Remove(accountID, invID string) error {
	_, err := r.db.Exec(r.db.Rebind(`DELETE FROM cart WHERE account_id = ? AND inv_id = ?`), accountID, invID)
	return err
}

// Count sums line quantities for the badge in the page header.
func (r *CartRepo) Count(accountID string) (int, error) {
	var n int
	err := r.db.Get(&n, r.db.Rebind(`SELECT COALESCE(SUM(cart_quantity),0) FROM cart WHERE account_id = ?`), accountID)
	return n, err
}

func (r *CartRepo) CountRows() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM cart`)
	return n, err
}

// CheckoutClear reads the account's lines and deletes them in one
// transaction, so a concurrent add cannot slip between the total
// computation and the clear.
func (r *CartRepo) CheckoutClear(accountID string) ([]CartLine, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	lines := []CartLine{}
	if err := tx.Select(&lines, tx.Rebind(`
		SELECT c.cart_id, c.inv_id, c.cart_quantity, c.cart_unit_price,
		       (i.inv_make || ' ' || i.inv_model) AS name,
		       COALESCE(i.inv_thumbnail, i.inv_image, '') AS thumbnail
		FROM cart c JOIN inventory i ON i.inv_id = c.inv_id
		WHERE c.account_id = ?
	`), accountID); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return lines, tx.Commit()
	}

	if _, err := tx.Exec(tx.Rebind(`DELETE FROM cart WHERE account_id = ?`), accountID); err != nil {
		return nil, err
	}

	return lines, tx.Commit()
}
