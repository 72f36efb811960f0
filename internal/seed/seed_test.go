package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/repository"
)

const usersCSV = `id,name,avatar,email,role,shares,points,connectedAccounts
a1,赵磊,https://picsum.photos/id/1/100/100,zhaolei@example.com,Admin,0,0,
e1,孙悦,,sunyue@example.com,Employee,3,30,TikTok|LinkedIn|TikTok
`

func TestReadUsersCSV(t *testing.T) {
	users, err := ReadUsersCSV(strings.NewReader(usersCSV))
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, &domain.User{
		ID:                "a1",
		Name:              "赵磊",
		Avatar:            "https://picsum.photos/id/1/100/100",
		Email:             "zhaolei@example.com",
		Role:              domain.RoleAdmin,
		ConnectedAccounts: []domain.Platform{},
	}, users[0])
	assert.Equal(t, []domain.Platform{domain.PlatformTikTok, domain.PlatformLinkedIn}, users[1].ConnectedAccounts)
	assert.EqualValues(t, 30, users[1].Points)
}

func TestReadUsersCSVErrors(t *testing.T) {
	header := "id,name,avatar,email,role,shares,points,connectedAccounts\n"
	cases := map[string]string{
		"empty":            "",
		"wrong header":     "id,name\n",
		"no users":         header,
		"missing id":       header + ",a,,,Admin,0,0,\n",
		"bad role":         header + "x,a,,,Guest,0,0,\n",
		"negative points":  header + "x,a,,,Admin,0,-1,\n",
		"bad shares":       header + "x,a,,,Admin,many,0,\n",
		"unknown platform": header + "x,a,,,Admin,0,0,Facebook\n",
		"short record":     header + "x,a,,,Admin\n",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadUsersCSV(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestSeedDefaults(t *testing.T) {
	repo := repository.NewRepository()
	require.NoError(t, Seed(repo, ""))

	assert.Len(t, repo.GetAllUsers(), len(DefaultUsers))

	posts := repo.GetAllPosts()
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "p2", posts[1].ID)

	admin, err := repo.FindFirstUserByRole(domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "u1", admin.ID)
}

func TestSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte(usersCSV), 0o644))

	repo := repository.NewRepository()
	require.NoError(t, Seed(repo, path))

	assert.Len(t, repo.GetAllUsers(), 2)
	// 默认活动的作者 u1 不存在，跳过
	assert.Zero(t, repo.CountPosts())

	assert.Error(t, Seed(repository.NewRepository(), filepath.Join(t.TempDir(), "missing.csv")))
}
