// Package app 汇总进程内共享的依赖，由 cmd/server 构建后注入各模块
package app

import (
	"campus-activity/config"
	"campus-activity/internal/global/jwt"
	"campus-activity/internal/global/pictureBed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client // 未配置时为 nil
	Tokens  *jwt.Manager
	Storage *pictureBed.PictureBed
}
