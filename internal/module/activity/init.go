package activity

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleActivity struct {
	svc *Service
}

func (m *ModuleActivity) GetName() string {
	return "Activity"
}

func (m *ModuleActivity) Init(a *app.App) {
	log = logger.New("Activity")
	m.svc = NewService(a.DB)
}
