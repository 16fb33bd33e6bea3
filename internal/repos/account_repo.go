package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"motortrade/internal/domain"
)

type AccountRepo struct{ DB *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountCols = `account_id, account_firstname, account_lastname, account_email, account_password, account_type`

func (r *AccountRepo) ByEmail(email string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, r.DB.Rebind(`SELECT `+accountCols+` FROM account WHERE account_email = ?`), email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) ByID(id string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, r.DB.Rebind(`SELECT `+accountCols+` FROM account WHERE account_id = ?`), id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) EmailExists(email string) (bool, error) {
	var n int
	err := r.DB.Get(&n, r.DB.Rebind(`SELECT COUNT(*) FROM account WHERE account_email = ?`), email)
	return n > 0, err
}

func (r *AccountRepo) Create(a *domain.Account) error {
	_, err := r.DB.Exec(r.DB.Rebind(`
		INSERT INTO account(account_id, account_firstname, account_lastname, account_email, account_password, account_type, created_at)
		VALUES(?,?,?,?,?,?,?)
	`), a.ID, a.FirstName, a.LastName, a.Email, a.Hash, a.Role, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *AccountRepo) Update(id, first, last, email string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, r.DB.Rebind(`
		UPDATE account
		SET account_firstname = ?, account_lastname = ?, account_email = ?
		WHERE account_id = ?
		RETURNING `+accountCols),
		first, last, email, id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) UpdatePassword(id, hash string) error {
	_, err := r.DB.Exec(r.DB.Rebind(`UPDATE account SET account_password = ? WHERE account_id = ?`), hash, id)
	return err
}

func (r *AccountRepo) Count() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM account`)
	return n, err
}

func (r *AccountRepo) CountAdmins() (int, error) {
	var n int
	err := r.DB.Get(&n, r.DB.Rebind(`SELECT COUNT(*) FROM account WHERE account_type = ?`), domain.RoleAdmin)
	return n, err
}
