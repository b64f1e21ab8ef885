package announcement

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleAnnouncement struct {
	svc *Service
}

func (m *ModuleAnnouncement) GetName() string {
	return "Announcement"
}

func (m *ModuleAnnouncement) Init(a *app.App) {
	log = logger.New("Announcement")
	m.svc = NewService(a.DB)
}
