package model

// Tag is an account-scoped label attached to snippets through a many-to-many
// join. Tag names are unique per account, so the same name used on several
// snippets always resolves to the same Tag row.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
