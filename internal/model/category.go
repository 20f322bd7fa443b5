package model

// Category is a named grouping of snippets owned by one account.
// Every read and write is scoped by UserID — a category is never visible
// to any account other than its owner.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}
