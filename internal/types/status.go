package types

// Status is the lifecycle status of a stored document.
// Archived documents are kept for history and excluded from live counts.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)
