package domain

const RoleAdmin = "admin"

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// Identity is the ephemeral claim set resolved from a bearer credential.
type Identity struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
