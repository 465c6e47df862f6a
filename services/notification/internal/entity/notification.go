package entity

// Notification is a user-facing message produced from a post lifecycle
// event, such as "A post for Instagram has been published!".
type Notification struct {
	OwnerID   string `json:"owner_id"`
	PostID    string `json:"post_id,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	CreatedAt string `json:"created_at"`
}
