package models

import "time"

// Post is a user-authored entry. AuthorID is fixed at creation.
type Post struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	DatePosted time.Time `json:"date_posted"`
	AuthorID   int       `json:"author_id"`
	Author     string    `json:"author"` // username, filled on reads
}
