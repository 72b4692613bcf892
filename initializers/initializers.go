package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"hr-pipeline-backend/config"
	"hr-pipeline-backend/fiberlog"
	"hr-pipeline-backend/lib/analytics"
	funnelworker "hr-pipeline-backend/lib/analytics/funnel-worker"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	"hr-pipeline-backend/lib/notification"
	"hr-pipeline-backend/lib/participation"
	"hr-pipeline-backend/lib/pipeline"
	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	InitHandlers()
	initWorkers(ctx)
	log.Info("Сервисы инициализированы")
}

func initWorkers(ctx context.Context) {
	// Пересчет метрик воронки для /metrics
	if *config.Conf.Metrics.Enabled && config.Conf.Metrics.RefreshIntervalSec > 0 {
		funnelworker.StartWorker(ctx, time.Duration(config.Conf.Metrics.RefreshIntervalSec)*time.Second)
	}
}

// InitHandlers обработчики движка подбора, порядок важен: каталог и участие нужны движку перевода
func InitHandlers() {
	stagecatalog.NewHandler(config.Conf.Pipeline.CatalogFile)
	participation.NewHandler()
	notification.NewHandler()
	initchecker.CheckInit(
		"stageCatalog", stagecatalog.Instance,
		"participation", participation.Instance,
		"notification", notification.Instance,
	)
	pipeline.NewHandler()
	xlsexport.NewHandler()
	analytics.NewHandler()
}
