package analytics

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hr-pipeline-backend/db"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
	stagehistorystore "hr-pipeline-backend/lib/stage-history/store"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
	"hr-pipeline-backend/lib/utils/metrics"
	"hr-pipeline-backend/models"
	analyticsapimodels "hr-pipeline-backend/models/api/analytics"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Stages() ([]analyticsapimodels.OutcomeResult, error)
	Sources() ([]analyticsapimodels.OutcomeResult, error)
	Groups() ([]analyticsapimodels.OutcomeResult, error)
	Conversions() ([]analyticsapimodels.ConversionEdge, error)
	Paths(filter analyticsapimodels.PathFilter) ([]analyticsapimodels.FlowPath, error)
	// Report все отчеты по одному снимку истории
	Report() (*analyticsapimodels.FunnelReport, error)
	ExportToXls() (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	instance := NewInstance(db.DB, stagecatalog.Instance, xlsexport.Instance)
	initchecker.CheckInit(
		"catalog", stagecatalog.Instance,
		"xlsExport", xlsexport.Instance,
	)
	Instance = instance
}

func NewInstance(DB *gorm.DB, catalog stagecatalog.Provider, exporter xlsexport.Provider) Provider {
	return &impl{
		db:       DB,
		catalog:  catalog,
		exporter: exporter,
	}
}

type impl struct {
	db       *gorm.DB
	catalog  stagecatalog.Provider
	exporter xlsexport.Provider
}

type snapshot struct {
	history []dbmodels.StageHistory
	sources map[string]models.CandidateSource
}

// loadSnapshot история и источники читаются в одной транзакции
func (i impl) loadSnapshot(withSources bool) (*snapshot, error) {
	result := &snapshot{}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		var err error
		result.history, err = stagehistorystore.NewInstance(tx).ListAll()
		if err != nil {
			return errors.Wrap(err, "ошибка получения истории этапов")
		}
		if withSources {
			result.sources, err = candidatestore.NewInstance(tx).SourceMap()
			if err != nil {
				return errors.Wrap(err, "ошибка получения источников кандидатов")
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("ошибка загрузки данных для отчета воронки")
		return nil, err
	}
	return result, nil
}

func (i impl) Stages() ([]analyticsapimodels.OutcomeResult, error) {
	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("stages"))
	defer timer.ObserveDuration()
	data, err := i.loadSnapshot(false)
	if err != nil {
		return nil, err
	}
	return i.orderByStage(StageResults(data.history)), nil
}

func (i impl) Sources() ([]analyticsapimodels.OutcomeResult, error) {
	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("sources"))
	defer timer.ObserveDuration()
	data, err := i.loadSnapshot(true)
	if err != nil {
		return nil, err
	}
	return SourceResults(data.history, data.sources), nil
}

func (i impl) Groups() ([]analyticsapimodels.OutcomeResult, error) {
	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("groups"))
	defer timer.ObserveDuration()
	data, err := i.loadSnapshot(false)
	if err != nil {
		return nil, err
	}
	return i.orderByGroup(GroupResults(data.history, i.catalog.StageGroups())), nil
}

func (i impl) Conversions() ([]analyticsapimodels.ConversionEdge, error) {
	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("conversions"))
	defer timer.ObserveDuration()
	data, err := i.loadSnapshot(false)
	if err != nil {
		return nil, err
	}
	return i.orderEdges(ConversionRates(data.history)), nil
}

func (i impl) Paths(filter analyticsapimodels.PathFilter) ([]analyticsapimodels.FlowPath, error) {
	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("paths"))
	defer timer.ObserveDuration()
	data, err := i.loadSnapshot(false)
	if err != nil {
		return nil, err
	}
	return limitPaths(FlowPaths(data.history), filter.Limit), nil
}

func (i impl) Report() (*analyticsapimodels.FunnelReport, error) {
	timer := prometheus.NewTimer(metrics.ReportDuration.WithLabelValues("report"))
	defer timer.ObserveDuration()
	data, err := i.loadSnapshot(true)
	if err != nil {
		return nil, err
	}
	return &analyticsapimodels.FunnelReport{
		Stages:      i.orderByStage(StageResults(data.history)),
		Sources:     SourceResults(data.history, data.sources),
		Groups:      i.orderByGroup(GroupResults(data.history, i.catalog.StageGroups())),
		Conversions: i.orderEdges(ConversionRates(data.history)),
		Paths:       FlowPaths(data.history),
	}, nil
}

func (i impl) ExportToXls() (*bytes.Buffer, error) {
	report, err := i.Report()
	if err != nil {
		return nil, err
	}
	buf, err := i.exporter.ExportFunnelReport(*report)
	if err != nil {
		log.WithError(err).Error("ошибка выгрузки отчета воронки в xlsx")
		return nil, err
	}
	return buf, nil
}

// orderByStage этапы каталога в каноническом порядке, неизвестные этапы - в конце по алфавиту
func (i impl) orderByStage(list []analyticsapimodels.OutcomeResult) []analyticsapimodels.OutcomeResult {
	sort.SliceStable(list, func(a, b int) bool {
		return i.catalog.StageOrder(list[a].Key) < i.catalog.StageOrder(list[b].Key)
	})
	return list
}

func (i impl) orderByGroup(list []analyticsapimodels.OutcomeResult) []analyticsapimodels.OutcomeResult {
	groupOrder := map[string]int{}
	for _, stage := range i.catalog.Stages() {
		if _, ok := groupOrder[stage.Group]; !ok {
			groupOrder[stage.Group] = len(groupOrder)
		}
	}
	order := func(group string) int {
		if idx, ok := groupOrder[group]; ok {
			return idx
		}
		return len(groupOrder)
	}
	sort.SliceStable(list, func(a, b int) bool {
		return order(list[a].Key) < order(list[b].Key)
	})
	return list
}

func (i impl) orderEdges(list []analyticsapimodels.ConversionEdge) []analyticsapimodels.ConversionEdge {
	sort.SliceStable(list, func(a, b int) bool {
		fromA, fromB := i.catalog.StageOrder(list[a].FromStage), i.catalog.StageOrder(list[b].FromStage)
		if fromA != fromB {
			return fromA < fromB
		}
		return i.catalog.StageOrder(list[a].ToStage) < i.catalog.StageOrder(list[b].ToStage)
	})
	return list
}

func limitPaths(list []analyticsapimodels.FlowPath, limit int) []analyticsapimodels.FlowPath {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
