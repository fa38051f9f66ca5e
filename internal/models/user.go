package models

// User is a ledger owner.
//
// Users are not accounts: the ID is generated by the client installation on
// first launch and sent with every request. InitUser records it so the owner
// can be issued a signed token.
type User struct {
	// ID is the client-generated identifier.
	ID string

	// CreatedAt is the Unix timestamp (seconds) when the user was first seen.
	CreatedAt int64
}
