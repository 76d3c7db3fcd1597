package models

// Role distinguishes administrators from regular users.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleRegular       Role = "Regular"
)

func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleRegular
}

type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PasswordHash   string `json:"-"`
	Role           Role   `json:"role"`
	TelegramChatID int64  `json:"-"`
}

// Actor is the acting context passed into every domain operation. Services
// never read ambient session state.
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdministrator
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
