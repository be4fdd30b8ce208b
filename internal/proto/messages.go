package proto

import "time"

// Status messages for codes.AlreadyExists on Register. Clients tell the two
// conflicts apart by message.
const (
	MsgUsernameTaken = "Username already exists!"
	MsgEmailTaken    = "Email already registered!"
)

// Search fields accepted by SearchVideos.
const (
	SearchByTitle  = "title"
	SearchByArtist = "artist"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type ProfileResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type Video struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type AddVideoRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}

type ListVideosResponse struct {
	Videos []*Video `json:"videos"`
}

type GetVideoRequest struct {
	ID int64 `json:"id"`
}

type UpdateVideoRequest struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}

type DeleteVideoRequest struct {
	ID int64 `json:"id"`
}

type SearchVideosRequest struct {
	Field string `json:"field"`
	Term  string `json:"term"`
}
