package auth

// UserInfo is the profile of the user a session token authenticates.
type UserInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
