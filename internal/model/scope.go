package model

// Scope identifies who an operation runs for.
type Scope struct {
	UserID   int64
	Username string
	ChatID   int64
}
