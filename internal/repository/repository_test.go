package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
)

func TestUsersAreCopied(t *testing.T) {
	r := NewRepository()
	require.NoError(t, r.CreateUser(&domain.User{ID: "u1", Role: domain.RoleAdmin, ConnectedAccounts: []domain.Platform{domain.PlatformLinkedIn}}))
	require.Error(t, r.CreateUser(&domain.User{ID: "u1"}))

	u, err := r.GetUserByID("u1")
	require.NoError(t, err)
	u.Points = 999
	u.ConnectedAccounts[0] = domain.PlatformTikTok

	again, err := r.GetUserByID("u1")
	require.NoError(t, err)
	assert.Zero(t, again.Points)
	assert.Equal(t, []domain.Platform{domain.PlatformLinkedIn}, again.ConnectedAccounts)

	_, err = r.GetUserByID("nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	r := NewRepository()
	require.NoError(t, r.CreateUser(&domain.User{ID: "u1"}))

	updated, err := r.UpdateUser("u1", func(u *domain.User) error {
		u.Shares = 3
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, updated.Shares)

	boom := errors.New("boom")
	_, err = r.UpdateUser("u1", func(u *domain.User) error {
		u.Shares = 100
		return boom
	})
	assert.ErrorIs(t, err, boom)

	u, err := r.GetUserByID("u1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, u.Shares)

	_, err = r.UpdateUser("nobody", func(u *domain.User) error { return nil })
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestFindFirstUserByRole(t *testing.T) {
	r := NewRepository()
	require.NoError(t, r.CreateUser(&domain.User{ID: "a", Role: domain.RoleAdmin}))
	require.NoError(t, r.CreateUser(&domain.User{ID: "e1", Role: domain.RoleEmployee}))
	require.NoError(t, r.CreateUser(&domain.User{ID: "e2", Role: domain.RoleEmployee}))

	u, err := r.FindFirstUserByRole(domain.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, "e1", u.ID)

	_, err = NewRepository().FindFirstUserByRole(domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPostsOrdering(t *testing.T) {
	r := NewRepository()
	require.NoError(t, r.AppendPost(&domain.Post{ID: "p1"}))
	require.NoError(t, r.AppendPost(&domain.Post{ID: "p2"}))
	require.NoError(t, r.CreatePost(&domain.Post{ID: "p3"}))
	require.Error(t, r.CreatePost(&domain.Post{ID: "p1"}))

	ids := []string{}
	for _, p := range r.GetAllPosts() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p3", "p1", "p2"}, ids)
	assert.Equal(t, 3, r.CountPosts())

	_, err := r.GetPostByID("p9")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestShareLogs(t *testing.T) {
	r := NewRepository()
	r.InsertShareLog(&domain.ShareLog{ID: "s1", UserID: "u1"})
	r.InsertShareLog(&domain.ShareLog{ID: "s2", UserID: "u2"})
	r.InsertShareLog(&domain.ShareLog{ID: "s3", UserID: "u1"})

	assert.Len(t, r.GetAllShareLogs(), 3)

	mine := r.GetShareLogsByUserID("u1")
	require.Len(t, mine, 2)
	assert.Equal(t, "s1", mine[0].ID)
	assert.Equal(t, "s3", mine[1].ID)
}
