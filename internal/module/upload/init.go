package upload

import (
	"log/slog"

	"campus-activity/internal/global/app"
	"campus-activity/internal/global/logger"
	"campus-activity/internal/global/pictureBed"
)

var log *slog.Logger

type ModuleUpload struct {
	storage *pictureBed.PictureBed
}

func (m *ModuleUpload) GetName() string {
	return "Upload"
}

func (m *ModuleUpload) Init(a *app.App) {
	log = logger.New("Upload")
	m.storage = a.Storage
}
