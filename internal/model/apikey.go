package model

import "time"

// APIKey backs the /api/v1 integration surface. Only the prefix is stored
// in clear; the secret exists as a bcrypt hash.
type APIKey struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Prefix      string     `json:"prefix"`
	SecretHash  string     `json:"-"`
	Permissions []string   `json:"permissions"` // e.g. invoices:read, time:write, *
	Revoked     bool       `json:"revoked"`
	LastUsedAt  *time.Time `json:"last_used_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
