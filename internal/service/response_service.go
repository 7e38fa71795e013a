package service

import "blog_app/internal/models"

// RegisterInput is what a new account is created from.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// PostInput holds the user-editable fields of a post.
type PostInput struct {
	Title   string
	Content string
}

// PostPage is one page of a newest-first listing.
type PostPage struct {
	Posts []models.Post `json:"posts"`
	Page  PageInfo      `json:"page"`
}

// ProfileView is the account as shown to its owner.
type ProfileView struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Image    string `json:"image"`
	ImageURL string `json:"image_url"`
}
