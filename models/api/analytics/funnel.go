package analyticsapimodels

import "hr-pipeline-backend/models"

// OutcomeResult счетчики исходов по ключу (этап, источник, группа этапов)
type OutcomeResult struct {
	Key       string `json:"key"`
	Total     int    `json:"total"`
	Passed    int    `json:"passed"`
	Failed    int    `json:"failed"`
	Pending   int    `json:"pending"`
	Declined  int    `json:"declined"`
	Cancelled int    `json:"cancelled"`
}

func (r *OutcomeResult) Add(category models.OutcomeCategory) {
	r.Total++
	switch category {
	case models.OutcomePassed:
		r.Passed++
	case models.OutcomeFailed:
		r.Failed++
	case models.OutcomePending:
		r.Pending++
	case models.OutcomeDeclined:
		r.Declined++
	case models.OutcomeCancelled:
		r.Cancelled++
	}
}

type ConversionEdge struct {
	FromStage string  `json:"from_stage"`
	ToStage   string  `json:"to_stage"`
	Passed    int     `json:"passed"` // переходов с исходом passed на целевом этапе
	Count     int     `json:"count"`  // всего переходов from -> to
	Rate      float64 `json:"rate"`   // % от всех переходов с этапа from, один знак после запятой
}

type FlowPath struct {
	StageSequence []string `json:"stage_sequence"`
	Count         int      `json:"count"`
	Percentage    float64  `json:"percentage"` // % от всех кандидатов в воронке
}

type FunnelReport struct {
	Stages      []OutcomeResult  `json:"stages"`
	Sources     []OutcomeResult  `json:"sources"`
	Groups      []OutcomeResult  `json:"groups"`
	Conversions []ConversionEdge `json:"conversions"`
	Paths       []FlowPath       `json:"paths"`
}

type PathFilter struct {
	Limit int `json:"limit" query:"limit"` // Количество путей, 0 - все
}
