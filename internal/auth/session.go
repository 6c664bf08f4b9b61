package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CookieName is the cookie the backend reads the session token from
const CookieName = "session"

// Session identifies the signed-in user
type Session struct {
	UID   string // resolved from the backend, may be empty until then
	Token string
}

// New builds a session from a raw token
func New(token string) Session {
	return Session{Token: strings.TrimSpace(token)}
}

// IsAnonymous reports whether the session carries no credentials
func (s Session) IsAnonymous() bool {
	return s.Token == ""
}

// Key identifies the identity behind the session without exposing the token.
// The UID is preferred once known.
func (s Session) Key() string {
	if s.UID != "" {
		return "uid:" + s.UID
	}
	if s.Token == "" {
		return "anonymous"
	}
	sum := sha256.Sum256([]byte(s.Token))
	return "token:" + hex.EncodeToString(sum[:8])
}

// Changed reports whether next belongs to a different identity than prev.
// Learning the UID of the same token is not a change.
func Changed(prev, next Session) bool {
	if prev.Token != next.Token {
		return true
	}
	return prev.UID != "" && next.UID != "" && prev.UID != next.UID
}

// Resolve picks the first non-empty token in order of precedence
func Resolve(tokens ...string) Session {
	for _, t := range tokens {
		if s := New(t); !s.IsAnonymous() {
			return s
		}
	}
	return Session{}
}
