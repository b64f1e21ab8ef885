package registration

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleRegistration struct {
	svc *Service
}

func (m *ModuleRegistration) GetName() string {
	return "Registration"
}

func (m *ModuleRegistration) Init(a *app.App) {
	log = logger.New("Registration")
	m.svc = NewService(a.DB)
}
