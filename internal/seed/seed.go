package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/repository"
)

var DefaultUsers = []*domain.User{
	{
		ID:                "u1",
		Name:              "王芳",
		Avatar:            "https://picsum.photos/id/64/100/100",
		Email:             "wangfang@example.com",
		Role:              domain.RoleAdmin,
		Shares:            12,
		Points:            120,
		ConnectedAccounts: []domain.Platform{domain.PlatformLinkedIn},
	},
	{
		ID:                "u2",
		Name:              "李强",
		Avatar:            "https://picsum.photos/id/91/100/100",
		Email:             "liqiang@example.com",
		Role:              domain.RoleEmployee,
		Shares:            45,
		Points:            450,
		ConnectedAccounts: []domain.Platform{domain.PlatformInstagram, domain.PlatformTikTok},
	},
	{
		ID:                "u3",
		Name:              "张敏",
		Avatar:            "https://picsum.photos/id/129/100/100",
		Email:             "zhangmin@example.com",
		Role:              domain.RoleEmployee,
		Shares:            38,
		Points:            380,
		ConnectedAccounts: []domain.Platform{},
	},
	{
		ID:                "u4",
		Name:              "陈静",
		Avatar:            "https://picsum.photos/id/177/100/100",
		Email:             "chenjing@example.com",
		Role:              domain.RoleEmployee,
		Shares:            52,
		Points:            520,
		ConnectedAccounts: []domain.Platform{domain.PlatformLinkedIn, domain.PlatformInstagram},
	},
}

func DefaultPosts(now time.Time) []*domain.Post {
	return []*domain.Post{
		{
			ID:                "p1",
			Title:             "第三季度公司成绩",
			Content:           "很高兴地宣布我们第三季度增长了 20%！感谢出色的团队和客户。#增长 #成功",
			Platforms:         []domain.Platform{domain.PlatformLinkedIn, domain.PlatformInstagram},
			ImageURL:          "https://picsum.photos/id/4/600/400",
			CreatedAt:         now,
			AuthorID:          "u1",
			Status:            domain.PostStatusPublished,
			SuggestedHashtags: []string{"#Business", "#Milestone", "#TeamWork"},
		},
		{
			ID:                "p2",
			Title:             "办公室日常：幕后花絮",
			Content:           "来看看我们新的咖啡角！☕️ 每天为好点子加油。",
			Platforms:         []domain.Platform{domain.PlatformTikTok, domain.PlatformInstagram},
			ImageURL:          "https://picsum.photos/id/42/600/800",
			CreatedAt:         now,
			AuthorID:          "u1",
			Status:            domain.PostStatusPublished,
			SuggestedHashtags: []string{"#OfficeLife", "#CoffeeCulture", "#Vibes"},
		},
	}
}

// Seed 写入初始用户和活动，usersFile 不为空时从 CSV 文件读取用户
func Seed(r *repository.Repository, usersFile string) error {
	users := DefaultUsers
	if usersFile != "" {
		file, err := os.Open(usersFile)
		if err != nil {
			return err
		}
		defer file.Close()

		users, err = ReadUsersCSV(file)
		if err != nil {
			return err
		}
	}

	for _, u := range users {
		if err := r.CreateUser(u); err != nil {
			return err
		}
	}

	for _, p := range DefaultPosts(time.Now()) {
		if _, err := r.GetUserByID(p.AuthorID); err != nil {
			// 自定义用户中没有默认活动的作者，跳过
			slog.Warn("跳过初始活动", "post", p.ID, "author", p.AuthorID)
			continue
		}
		if err := r.AppendPost(p); err != nil {
			return err
		}
	}

	slog.Info("初始数据写入成功", "users", len(users), "posts", r.CountPosts())

	return nil
}

var csvHeaders = []string{"id", "name", "avatar", "email", "role", "shares", "points", "connectedAccounts"}

// ReadUsersCSV 读取用户 CSV，表头必须为 csvHeaders，已绑定平台之间用 | 分隔
func ReadUsersCSV(reader io.Reader) ([]*domain.User, error) {
	r := csv.NewReader(reader)

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}
	if len(headers) != len(csvHeaders) {
		return nil, fmt.Errorf("表头应为 %s", strings.Join(csvHeaders, ","))
	}
	for i, h := range headers {
		if strings.TrimSpace(h) != csvHeaders[i] {
			return nil, fmt.Errorf("第 %d 列表头应为 %s", i+1, csvHeaders[i])
		}
	}

	users := make([]*domain.User, 0)
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		user, err := parseUserRecord(record)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行: %w", line, err)
		}
		users = append(users, user)
	}

	if len(users) == 0 {
		return nil, errors.New("用户文件中没有任何用户")
	}

	return users, nil
}

func parseUserRecord(record []string) (*domain.User, error) {
	id := strings.TrimSpace(record[0])
	if id == "" {
		return nil, errors.New("用户 ID 不能为空")
	}

	role := domain.Role(strings.TrimSpace(record[4]))
	if !role.Valid() {
		return nil, fmt.Errorf("无效的角色 %q", record[4])
	}

	shares, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64)
	if err != nil || shares < 0 {
		return nil, fmt.Errorf("无效的分享次数 %q", record[5])
	}
	points, err := strconv.ParseInt(strings.TrimSpace(record[6]), 10, 64)
	if err != nil || points < 0 {
		return nil, fmt.Errorf("无效的积分 %q", record[6])
	}

	accounts := []domain.Platform{}
	for _, s := range strings.Split(record[7], "|") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		p, err := domain.ParsePlatform(s)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(accounts, p) {
			accounts = append(accounts, p)
		}
	}

	return &domain.User{
		ID:                id,
		Name:              strings.TrimSpace(record[1]),
		Avatar:            strings.TrimSpace(record[2]),
		Email:             strings.TrimSpace(record[3]),
		Role:              role,
		Shares:            shares,
		Points:            points,
		ConnectedAccounts: accounts,
	}, nil
}
