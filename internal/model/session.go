package model

// RoleAdmin is the value of the role claim that unlocks catalog administration.
const RoleAdmin = "admin"

type User struct {
	Email string
	Role  string
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session is what a browser holds between requests. It is created at login,
// read by every page, and only ever mutated by dropping the token.
type Session struct {
	Token string
	User  *User
}
