package apikey

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Keys look like "fb_<prefix>_<secret>". The prefix is stored in clear for
// lookup; only a bcrypt hash of the secret is persisted.
const (
	keyScheme    = "fb"
	prefixBytes  = 4
	secretBytes  = 24
	PermWildcard = "*"
)

// Permission strings checked against a key's grant list.
const (
	PermInvoicesRead  = "invoices:read"
	PermInvoicesWrite = "invoices:write"
	PermTimeRead      = "time:read"
	PermTimeWrite     = "time:write"
)

// Generate creates a new API key. It returns the full token (shown to the
// caller exactly once), the lookup prefix and the bcrypt hash of the secret.
func Generate() (token, prefix, secretHash string, err error) {
	prefix, err = randomHex(prefixBytes)
	if err != nil {
		return "", "", "", err
	}
	secret, err := randomHex(secretBytes)
	if err != nil {
		return "", "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), 8)
	if err != nil {
		return "", "", "", err
	}

	return fmt.Sprintf("%s_%s_%s", keyScheme, prefix, secret), prefix, string(hash), nil
}

// Parse splits a presented token into its prefix and secret.
func Parse(token string) (prefix, secret string, err error) {
	parts := strings.Split(token, "_")
	if len(parts) != 3 || parts[0] != keyScheme || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("malformed api key")
	}
	return parts[1], parts[2], nil
}

// Verify checks a presented secret against the stored bcrypt hash.
func Verify(secret, secretHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(secret)) == nil
}

// HasPermission reports whether the granted permissions cover required,
// either exactly or via the wildcard.
func HasPermission(granted []string, required string) bool {
	for _, p := range granted {
		if p == PermWildcard || p == required {
			return true
		}
	}
	return false
}

// PermissionDeniedError is returned when a key lacks a required permission.
type PermissionDeniedError struct {
	Prefix     string
	Permission string
}

func (e *PermissionDeniedError) Error() string {
	return "insufficient permissions"
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
