package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChanged(t *testing.T) {
	tests := []struct {
		name       string
		prev, next Session
		want       bool
	}{
		{"same token", Session{Token: "a"}, Session{Token: "a"}, false},
		{"uid learned", Session{Token: "a"}, Session{Token: "a", UID: "u1"}, false},
		{"new token", Session{Token: "a"}, Session{Token: "b"}, true},
		{"signed out", Session{Token: "a", UID: "u1"}, Session{}, true},
		{"uid differs", Session{Token: "a", UID: "u1"}, Session{Token: "a", UID: "u2"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Changed(tt.prev, tt.next))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "anonymous", Session{}.Key())
	assert.Equal(t, "uid:u1", Session{UID: "u1", Token: "secret"}.Key())

	key := Session{Token: "secret"}.Key()
	assert.NotContains(t, key, "secret")
	assert.Equal(t, key, New("  secret ").Key())
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "flag", Resolve("flag", "env").Token)
	assert.Equal(t, "env", Resolve("", "  ", "env").Token)
	assert.True(t, Resolve("", "").IsAnonymous())
}
