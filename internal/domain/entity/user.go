// internal/domain/entity/user.go
package entity

// User carries login credentials and a role. RelatedID links the account to
// a customer or crew member record depending on the role.
type User struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Role         Role   `json:"role"`
	RelatedID    string `json:"related_id,omitempty"`
	Email        string `json:"email,omitempty"`
}
