package ping

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
)

var log *slog.Logger

type ModulePing struct {
	app *app.App
}

func (p *ModulePing) GetName() string {
	return "Ping"
}

func (p *ModulePing) Init(a *app.App) {
	log = logger.New("Ping")
	p.app = a
}
