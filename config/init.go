package config

import (
	"io/fs"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 APP_DATABASE_HOST
const EnvPrefix = "APP"

var (
	config = Default()
	mu     sync.RWMutex
)

// Default 返回内置默认配置，未调用 Init 时（例如单元测试）Get 拿到的就是它
func Default() *Config {
	return &Config{
		Host:   "0.0.0.0",
		Port:   "8080",
		Prefix: "api",
		Mode:   ModeDebug,
		Storage: Storage{
			Home:    "./upload",
			BaseURL: "/static",
		},
		Database: Database{
			Driver:  "mysql",
			Host:    "127.0.0.1",
			Port:    "3306",
			SSLMode: "disable",
		},
		JWT: JWT{
			AccessSecret: "change-me",
			AccessExpire: 365 * 24 * 60 * 60,
		},
		Auth: Auth{
			CookieName:   "token",
			AllowOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			PublicPaths: []string{
				"/ping",
				"POST /sign-up",
				"POST /sign-in",
				"GET /activities",
				"GET /activities/:id",
				"GET /activities/:id/comments",
				"GET /activities/:id/rating-stats",
				"GET /categories",
				"GET /categories/:id",
				"GET /categories/:id/stats",
				"GET /announcements",
				"GET /announcements/:id",
				"GET /stats/rank",
				"GET /activities/:id/star",
			},
		},
		Log: Log{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
		OTel: OTel{
			ServiceName: "campus-activity",
		},
	}
}

// Init 依次读取 config.yaml、.env 与环境变量，后者覆盖前者
func Init() {
	cfg, err := Load("config.yaml")
	if err != nil {
		panic(err)
	}
	Set(cfg)
}

// Load 从指定文件加载配置，文件不存在时只使用默认值和环境变量
func Load(file string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, "读取配置文件失败")
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "解析配置文件失败")
	}

	// .env 不存在不算错误
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "读取环境变量失败")
	}
	return cfg, nil
}

func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return config
}

// Set 替换全局配置，测试中用于注入定制配置
func Set(c *Config) {
	mu.Lock()
	defer mu.Unlock()
	config = c
}
