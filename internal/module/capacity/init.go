package capacity

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleCapacity struct {
	svc *Service
}

func (m *ModuleCapacity) GetName() string {
	return "Capacity"
}

func (m *ModuleCapacity) Init(a *app.App) {
	log = logger.New("Capacity")
	m.svc = NewService(a.DB)
}
