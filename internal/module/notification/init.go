package notification

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleNotification struct {
	svc *Service
}

func (m *ModuleNotification) GetName() string {
	return "Notification"
}

func (m *ModuleNotification) Init(a *app.App) {
	log = logger.New("Notification")
	m.svc = NewService(a.DB)
}
