package funnelworker

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"hr-pipeline-backend/lib/analytics"
	baseworker "hr-pipeline-backend/lib/utils/base-worker"
	"hr-pipeline-backend/lib/utils/metrics"
	"hr-pipeline-backend/models"
	analyticsapimodels "hr-pipeline-backend/models/api/analytics"
)

func StartWorker(ctx context.Context, interval time.Duration) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("FunnelMetricsWorker", 10*time.Second, interval),
		reports:  analytics.Instance,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	reports analytics.Provider
}

func (i impl) handle(ctx context.Context) error {
	list, err := i.reports.Stages()
	if err != nil {
		return errors.Wrap(err, "ошибка расчета исходов по этапам")
	}
	publish(list)
	i.GetLogger().WithField("stages", len(list)).Debug("метрики воронки обновлены")
	return nil
}

// publish заменяет значения целиком, этапы без записей из метрик пропадают
func publish(list []analyticsapimodels.OutcomeResult) {
	metrics.FunnelOutcomes.Reset()
	for _, item := range list {
		metrics.FunnelOutcomes.WithLabelValues(item.Key, string(models.OutcomePassed)).Set(float64(item.Passed))
		metrics.FunnelOutcomes.WithLabelValues(item.Key, string(models.OutcomeFailed)).Set(float64(item.Failed))
		metrics.FunnelOutcomes.WithLabelValues(item.Key, string(models.OutcomePending)).Set(float64(item.Pending))
		metrics.FunnelOutcomes.WithLabelValues(item.Key, string(models.OutcomeDeclined)).Set(float64(item.Declined))
		metrics.FunnelOutcomes.WithLabelValues(item.Key, string(models.OutcomeCancelled)).Set(float64(item.Cancelled))
	}
}
