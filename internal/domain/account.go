package domain

// Role is the account's authorization level. Stored as text but only
// ever compared as a typed value after ParseRole at the boundary.
type Role string

const (
	RoleClient Role = "Client"
	RoleAdmin  Role = "Admin"
)

// ParseRole maps arbitrary input to a known role, defaulting to Client.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleClient
}

type Account struct {
	ID        string `db:"account_id" json:"id"`
	FirstName string `db:"account_firstname" json:"firstname"`
	LastName  string `db:"account_lastname" json:"lastname"`
	Email     string `db:"account_email" json:"email"`
	Hash      string `db:"account_password" json:"-"`
	Role      Role   `db:"account_type" json:"-"`
}
