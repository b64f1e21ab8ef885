package feedback

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModuleFeedback struct {
	svc *Service
}

func (m *ModuleFeedback) GetName() string {
	return "Feedback"
}

func (m *ModuleFeedback) Init(a *app.App) {
	log = logger.New("Feedback")
	m.svc = NewService(a.DB)
}
