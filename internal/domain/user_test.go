package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserClone(t *testing.T) {
	u := &User{ID: "u1", ConnectedAccounts: []Platform{PlatformLinkedIn}}
	c := u.Clone()
	c.ConnectedAccounts[0] = PlatformTikTok

	assert.Equal(t, PlatformLinkedIn, u.ConnectedAccounts[0])
	assert.NotNil(t, (&User{}).Clone().ConnectedAccounts)
}
