package model

// Role constants. The two roles differ only in how the acting display name
// is sourced when stamping confirmations.
const (
	RolePIC   = "pic"
	RoleGuest = "guest"
)

// UserAccount is one row of the static credential table. Accounts are seeded
// in code at startup; there is no user management surface.
type UserAccount struct {
	Username    string   `json:"username"`
	Password    string   `json:"-"` // bcrypt hash, set at seed time
	DisplayName string   `json:"displayName"`
	Role        string   `json:"role"`
	Warehouses  []string `json:"warehouses"` // allowed access-group keys
}

// Actor carries the acting user's identity explicitly into every operation
// that stamps a confirmation, instead of re-reading ambient session state at
// each call site.
type Actor struct {
	Username  string
	GuestName string
	RoleName  string
}

// DisplayName resolves the name stamped onto confirmations. Priority: guest
// display name, then role display name, then username, then a literal
// fallback so the stamp is never empty.
func (a Actor) DisplayName() string {
	if a.GuestName != "" {
		return a.GuestName
	}
	if a.RoleName != "" {
		return a.RoleName
	}
	if a.Username != "" {
		return a.Username
	}
	return "approver"
}

// ActorFor builds the Actor for an authenticated account.
func ActorFor(account UserAccount) Actor {
	actor := Actor{Username: account.Username}
	if account.Role == RoleGuest {
		actor.GuestName = account.DisplayName
	} else {
		actor.RoleName = account.DisplayName
	}
	return actor
}
