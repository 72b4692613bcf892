// Package metrics счетчики движка подбора, отдаются через /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hr_pipeline"

var (
	// StageTransitions переводы кандидатов: stage - целевой этап, result - ok|error|conflict|validation
	StageTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_transitions_total",
		Help:      "Количество переводов кандидатов между этапами",
	}, []string{"stage", "result"})

	TasksCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Количество созданных задач по шаблонам этапов",
	}, []string{"stage", "kind"})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Отправка писем по задачам типа email",
	}, []string{"result"})

	ParticipationResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "participation_responses_total",
		Help:      "Ответы кандидатов об участии в мероприятиях",
	}, []string{"status", "result"})

	ReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analytics_report_duration_seconds",
		Help:      "Время построения аналитических отчетов",
		Buckets:   prometheus.DefBuckets,
	}, []string{"report"})

	// FunnelOutcomes текущее распределение исходов по этапам, обновляется воркером
	FunnelOutcomes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "funnel_outcomes",
		Help:      "Количество записей истории по этапам и категориям исхода",
	}, []string{"stage", "category"})
)
