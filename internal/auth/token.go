package auth

import "github.com/google/uuid"

// NewToken returns a fresh opaque session token. The token is random and
// unrelated to any persisted field; its validity is purely its presence in
// the session store.
func NewToken() string {
	return uuid.NewString()
}
