package database

import (
	"fmt"
	"strings"

	"campus-activity/config"
	"campus-activity/internal/global/sentry/tracing"
	"campus-activity/internal/model"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// autoMigrateModels 需要自动迁移的模型
var autoMigrateModels = []any{
	&model.User{},
	&model.Category{},
	&model.Activity{},
	&model.Registration{},
	&model.Feedback{},
	&model.Comment{},
	&model.Announcement{},
	&model.Notification{},
	&model.Star{},
}

// Dialector 按配置选择驱动，默认 MySQL
func Dialector(c config.Database) (gorm.Dialector, error) {
	switch strings.ToLower(c.Driver) {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
			c.Username, c.Password, c.Host, c.Port, c.DBName)
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.Username, c.Password, c.DBName, sslMode)
		return postgres.Open(dsn), nil
	default:
		return nil, errors.Errorf("不支持的数据库驱动: %s", c.Driver)
	}
}

// Open 建立连接并完成迁移，测试中传入 sqlite 方言
func Open(dialector gorm.Dialector, mode config.Mode) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		TranslateError: true,
	}
	switch mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	default:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, errors.Wrap(err, "连接数据库失败")
	}
	if tracing.IsEnabled() {
		if err := db.Use(tracing.NewGormTracingPlugin()); err != nil {
			return nil, errors.Wrap(err, "注册 Sentry 追踪插件失败")
		}
	}
	if err := db.AutoMigrate(autoMigrateModels...); err != nil {
		return nil, errors.Wrap(err, "自动迁移失败")
	}
	return db, nil
}
