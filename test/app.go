// Package test 提供 HTTP 层测试用的依赖构建与请求工具
package test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"campus-activity/config"
	"campus-activity/internal/global/app"
	"campus-activity/internal/global/database"
	"campus-activity/internal/global/jwt"
	"campus-activity/internal/global/pictureBed"
	"campus-activity/internal/global/validate"
	"campus-activity/internal/model"
	"campus-activity/tools"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Password 测试用户统一使用的密码
const Password = "abcdefg1"

// NewDB 在临时目录创建 SQLite 库并完成迁移。单连接，事务内的查询必须使用 tx
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "campus.db") + "?_pragma=busy_timeout(5000)"
	db, err := database.Open(sqlite.Open(dsn), config.ModeRelease)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewApp 使用 SQLite、miniredis 和本地存储构建完整依赖
func NewApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = config.ModeRelease
	cfg.Storage.Home = t.TempDir()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	storage, err := pictureBed.New(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, validate.Init())

	return &app.App{
		Config:  cfg,
		DB:      NewDB(t),
		Redis:   rdb,
		Tokens:  jwt.NewManager(cfg.JWT.AccessSecret, time.Hour, jwt.NewRedisRevoker(rdb)),
		Storage: storage,
	}
}

// CreateUser 直接写库创建用户，密码为 Password
func CreateUser(t *testing.T, db *gorm.DB, email, role string) model.User {
	t.Helper()
	hashed, err := tools.PasswordEncrypt(Password)
	require.NoError(t, err)
	u := model.User{
		Email:    email,
		Password: hashed,
		Name:     email,
		Role:     role,
		Status:   model.UserActive,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// CreateActivity 写入一个已发布、已审核的活动，开始时间在一天后
func CreateActivity(t *testing.T, db *gorm.DB, organizerID uint, capacity int) model.Activity {
	t.Helper()
	start := time.Now().UTC().Truncate(time.Second).Add(24 * time.Hour)
	a := model.Activity{
		OrganizerID:  organizerID,
		Title:        "Campus Run",
		Location:     "Stadium",
		StartTime:    start,
		EndTime:      start.Add(2 * time.Hour),
		Capacity:     capacity,
		Status:       model.ActivityPublished,
		ReviewStatus: model.ReviewApproved,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func Token(t *testing.T, a *app.App, u model.User) string {
	t.Helper()
	token, _, err := a.Tokens.CreateToken(jwt.Identity{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		StudentID: u.StudentID,
	})
	require.NoError(t, err)
	return token
}
