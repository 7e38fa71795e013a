package models

// DefaultProfileImage is stored for profiles that never uploaded an avatar.
const DefaultProfileImage = "default.jpg"

type Profile struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Image  string `json:"image"` // relative to the media root
}
