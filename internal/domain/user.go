package domain

import (
	"slices"
)

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
)

type User struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Avatar            string     `json:"avatar"`
	Email             string     `json:"email"`
	Role              Role       `json:"role"`
	Shares            int64      `json:"shares"`
	Points            int64      `json:"points"`
	ConnectedAccounts []Platform `json:"connectedAccounts"`
}

// Clone 返回一份不与原用户共享 ConnectedAccounts 底层数组的拷贝
func (u *User) Clone() *User {
	c := *u
	c.ConnectedAccounts = slices.Clone(u.ConnectedAccounts)
	if c.ConnectedAccounts == nil {
		c.ConnectedAccounts = []Platform{}
	}
	return &c
}

func (u *User) IsConnected(p Platform) bool {
	return slices.Contains(u.ConnectedAccounts, p)
}
