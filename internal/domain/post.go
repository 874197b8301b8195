package domain

import "time"

// Post represents a persisted blog post. UserID is the owning user, fixed at
// creation. Author carries the owner's public fields on reads that join users.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	ImageURL  *string   `json:"image_url,omitempty"`
	UserID    int64     `json:"user_id"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Author is the public subset of a user embedded in post responses.
type Author struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}
