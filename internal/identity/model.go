package identity

import "time"

// User is a registered listener. PasswordHash is a bcrypt digest and is never
// serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is a user with their favorites attached.
type Profile struct {
	User
	Favorites []Favorite `json:"favorites"`
}

// Favorite links a user to a song they marked.
type Favorite struct {
	ID     string `json:"id"`
	SongID string `json:"song_id"`
	UserID string `json:"user_id"`
}

// SignupInput is the payload of a signup request.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult pairs an issued token with the authenticated user.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
