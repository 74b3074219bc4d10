package models

import "time"

// Session is the server-side record behind a client session cookie.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}
