package domain

import "time"

// CachedToken is a bearer token persisted in the metadata store between
// fetches.
type CachedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Valid reports whether the token can still be used at the given instant.
// A token is valid while its expiry is strictly in the future.
func (t CachedToken) Valid(now time.Time) bool {
	return t.Token != "" && t.ExpiresAt.After(now)
}
