package stats

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleStats struct {
	svc *Service
}

func (*ModuleStats) GetName() string {
	return "Stats"
}

func (m *ModuleStats) Init(a *app.App) {
	log = logger.New("Stats")
	m.svc = NewService(a.DB)
}
