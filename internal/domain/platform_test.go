package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("LinkedIn")
	require.NoError(t, err)
	assert.Equal(t, PlatformLinkedIn, p)

	_, err = ParsePlatform("linkedin")
	assert.Error(t, err)
	_, err = ParsePlatform("Facebook")
	assert.Error(t, err)
}

func TestShareTargets(t *testing.T) {
	assert.Equal(t, "https://www.linkedin.com/feed/", PlatformLinkedIn.ShareURL())
	assert.Equal(t, "https://www.instagram.com/", PlatformInstagram.ShareURL())
	assert.Equal(t, "https://www.tiktok.com/upload", PlatformTikTok.ShareURL())

	post := &Post{Content: "新品发布", SuggestedHashtags: []string{"#A", "#B"}}
	assert.Equal(t, "新品发布\n\n#A #B", ShareText(post))
}
