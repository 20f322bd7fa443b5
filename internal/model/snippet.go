package model

import "time"

// Snippet represents a saved code snippet.
//
// Language is the flattened language name (the languages table is a lookup
// keyed by name; responses never expose the language_id foreign key).
// CategoryID is a pointer because the reference is optional — deleting a
// category nulls it out on the snippets that pointed at it.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize
// this struct; field names follow the wire format of the API (snake_case).
type Snippet struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Code       string    `json:"code"`
	Language   string    `json:"language"`
	UserID     string    `json:"user_id"`
	CategoryID *string   `json:"category_id"`
	Tags       []Tag     `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
