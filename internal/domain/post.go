package domain

import (
	"slices"
	"time"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

type Post struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Platforms         []Platform `json:"platforms"`
	ImageURL          string     `json:"imageUrl"`
	CreatedAt         time.Time  `json:"createdAt"`
	AuthorID          string     `json:"authorId"`
	Status            PostStatus `json:"status"`
	SuggestedHashtags []string   `json:"suggestedHashtags"`
}

func (p *Post) Clone() *Post {
	c := *p
	c.Platforms = slices.Clone(p.Platforms)
	c.SuggestedHashtags = slices.Clone(p.SuggestedHashtags)
	if c.SuggestedHashtags == nil {
		c.SuggestedHashtags = []string{}
	}
	return &c
}

func (p *Post) Targets(platform Platform) bool {
	return slices.Contains(p.Platforms, platform)
}

type ShareLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	Platform  Platform  `json:"platform"`
	Timestamp time.Time `json:"timestamp"`
}
