package star

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleStar struct {
	svc *Service
}

func (*ModuleStar) GetName() string {
	return "Star"
}

func (m *ModuleStar) Init(a *app.App) {
	log = logger.New("Star")
	m.svc = NewService(a.DB)
}
