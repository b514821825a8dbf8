package domain

import (
	"strings"
	"time"
)

// User represents an operator allowed to work with the ledger
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail returns the canonical form of an email used as the unique key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
