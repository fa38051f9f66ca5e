package models

// Group represents a reusable participant list.
// Groups are a convenience for picking beneficiaries; they never take part in
// settlement and survive journey archival.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// UserID is the ledger owner.
	UserID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	// Unique per owner, compared case-insensitively.
	Name string

	// Members is the ordered list of person names in this group.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
