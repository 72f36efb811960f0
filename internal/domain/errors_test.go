package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatingError(t *testing.T) {
	var err error = &GatingError{Reason: ReasonAccountNotConnected, Platform: PlatformTikTok}
	assert.True(t, IsGatingReason(err, ReasonAccountNotConnected))
	assert.False(t, IsGatingReason(err, ReasonPlatformNotTargeted))
	assert.Contains(t, err.Error(), "TikTok")
}
