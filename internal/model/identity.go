package model

// Identity is the per-session user profile.
type Identity struct {
	Name        string `json:"user_name"`
	Phone       string `json:"user_phone"`
	Email       string `json:"user_email"`
	TotalPoints int    `json:"total_points"`
}

// Registered reports whether the identity carries a usable email.
func (id *Identity) Registered() bool {
	return id != nil && id.Email != ""
}
