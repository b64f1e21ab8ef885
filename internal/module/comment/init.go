package comment

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleComment struct {
	svc *Service
}

func (m *ModuleComment) GetName() string {
	return "Comment"
}

func (m *ModuleComment) Init(a *app.App) {
	log = logger.New("Comment")
	m.svc = NewService(a.DB)
}
