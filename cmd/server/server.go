package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"campus-activity/config"
	"campus-activity/internal/global/app"
	"campus-activity/internal/global/cache"
	"campus-activity/internal/global/database"
	"campus-activity/internal/global/jwt"
	"campus-activity/internal/global/logger"
	"campus-activity/internal/global/middleware"
	internalOtel "campus-activity/internal/global/otel"
	"campus-activity/internal/global/pictureBed"
	"campus-activity/internal/global/response"
	"campus-activity/internal/global/sentry"
	"campus-activity/internal/global/validate"
	"campus-activity/internal/module"
	"campus-activity/tools"

	"github.com/gin-gonic/gin"
)

var (
	log         *slog.Logger
	application *app.App
)

func Init() {
	config.Init()
	cfg := config.Get()
	log = logger.New("Server")
	ctx := context.Background()

	tools.PanicOnErr(sentry.Init())
	tools.PanicOnErr(validate.Init())

	dialector, err := database.Dialector(cfg.Database)
	tools.PanicOnErr(err)
	db, err := database.Open(dialector, cfg.Mode)
	tools.PanicOnErr(err)

	rdb, err := cache.Open(ctx, cfg.Redis)
	tools.PanicOnErr(err)
	var revoker jwt.Revoker = jwt.NewMemoryRevoker()
	if rdb != nil {
		log.Info("Redis Enabled, token blacklist shared")
		revoker = jwt.NewRedisRevoker(rdb)
	}

	storage, err := pictureBed.New(ctx, cfg)
	tools.PanicOnErr(err)

	if cfg.OTel.Enable {
		log.Info("OTel Enabled")
		tools.PanicOnErr(internalOtel.Init(ctx, cfg.OTel))
	}

	application = &app.App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Tokens:  jwt.NewManager(cfg.JWT.AccessSecret, time.Duration(cfg.JWT.AccessExpire)*time.Second, revoker),
		Storage: storage,
	}
}

// NewEngine 组装中间件与全部模块路由
func NewEngine(a *app.App) *gin.Engine {
	cfg := a.Config
	gin.SetMode(string(cfg.Mode))
	r := gin.New()

	if cfg.Mode == config.ModeDebug {
		r.Use(response.ExposeOrigin())
	}
	r.Use(middleware.RequestID())
	switch cfg.Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(sentry.Middleware(), middleware.SentryEnrichIP())
	r.Use(middleware.Cors(cfg.Auth.AllowOrigins))
	r.Use(middleware.Recovery())
	if cfg.OTel.Enable {
		r.Use(middleware.Trace())
	}

	if a.Storage != nil && !a.Storage.UsesS3() {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.Home)
	}

	api := r.Group("/"+cfg.Prefix, middleware.Auth(a))
	for _, m := range module.New() {
		if log != nil {
			log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		}
		m.Init(a)
		m.InitRouter(api)
	}
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, response.ErrNotFound)
	})
	return r
}

// Run 启动 HTTP 服务，收到 SIGINT/SIGTERM 后优雅退出
func Run() {
	cfg := application.Config
	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: NewEngine(application),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
			stop()
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	if err := internalOtel.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown TracerProvider", "error", err)
	}
	if application.Redis != nil {
		_ = application.Redis.Close()
	}
	sentry.Flush(2 * time.Second)
	log.Info("Server exited")
}
