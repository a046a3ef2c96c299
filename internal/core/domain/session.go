package domain

import "time"

// Session is a server-side login session referenced by an opaque cookie.
type Session struct {
	ID        string
	AccountID int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
	FlashInfo    FlashLevel = "info"
)

// Flash is a one-shot message shown on the next rendered admin page.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}
