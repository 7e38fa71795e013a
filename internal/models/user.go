package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// Actor is the user a request acts on behalf of. The zero value is anonymous.
type Actor struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// Authenticated reports whether the actor carries a resolved user.
func (a Actor) Authenticated() bool {
	return a.UserID != 0
}
