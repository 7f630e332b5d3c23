package domain

import "time"

// AdminUserID is the fixed identity of the bootstrap account.
const AdminUserID = "admin"

// User models an account allowed into the admin panel.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// HasPassword reports whether the user can sign in with local credentials.
// Externally authenticated users carry no hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
