package category

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleCategory struct {
	svc *Service
}

func (m *ModuleCategory) GetName() string {
	return "Category"
}

func (m *ModuleCategory) Init(a *app.App) {
	log = logger.New("Category")
	m.svc = NewService(a.DB)
}
