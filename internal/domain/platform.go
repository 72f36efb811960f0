package domain

import (
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
	PlatformLinkedIn  Platform = "LinkedIn"
)

// 平台集合是封闭的，不支持动态扩展
var AllPlatforms = []Platform{PlatformInstagram, PlatformTikTok, PlatformLinkedIn}

// 分享时打开的各平台发布页
var shareURLs = map[Platform]string{
	PlatformLinkedIn:  "https://www.linkedin.com/feed/",
	PlatformInstagram: "https://www.instagram.com/",
	PlatformTikTok:    "https://www.tiktok.com/upload",
}

func ParsePlatform(s string) (Platform, error) {
	for _, p := range AllPlatforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("不支持的平台: %q", s)
}

func (p Platform) Valid() bool {
	_, ok := shareURLs[p]
	return ok
}

func (p Platform) ShareURL() string {
	return shareURLs[p]
}

// ShareText 是分享时复制到剪贴板的文本
func ShareText(post *Post) string {
	return post.Content + "\n\n" + strings.Join(post.SuggestedHashtags, " ")
}
