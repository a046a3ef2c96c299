package domain

import "time"

// MirrorEntry records a failed attempt to copy a local account into the
// external users collection. Entries stay pending until a retry succeeds.
type MirrorEntry struct {
	ID        string
	AccountID int64
	Username  string
	Payload   ExternalUserInput
	Attempts  int
	LastError string
	Resolved  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
