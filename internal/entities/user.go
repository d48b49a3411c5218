package entities

// User is a Telegram account known to the service. IsDM grants read and
// write access to every character regardless of ownership.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsDM      bool   `json:"is_dm"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
