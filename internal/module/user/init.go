package user

import (
	"log/slog"

	"campus-activity/config"
	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleUser struct {
	svc *Service
	cfg *config.Config
}

func (u *ModuleUser) GetName() string {
	return "User"
}

func (u *ModuleUser) Init(a *app.App) {
	log = logger.New("User")
	u.svc = NewService(a.DB, a.Tokens)
	u.cfg = a.Config
}
