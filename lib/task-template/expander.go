package tasktemplate

import (
	"time"

	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	// Expand задачи этапа в порядке шаблонов со сроками от referenceDate.
	// CandidateID и HistoryID заполняет вызывающий.
	Expand(stage string, referenceDate time.Time) []dbmodels.TaskInstance
}

func NewInstance(catalog stagecatalog.Provider) Provider {
	return impl{
		catalog: catalog,
	}
}

type impl struct {
	catalog stagecatalog.Provider
}

func (i impl) Expand(stage string, referenceDate time.Time) []dbmodels.TaskInstance {
	templates := i.catalog.ListTemplates(stage)
	result := make([]dbmodels.TaskInstance, 0, len(templates))
	approachIdx := 0
	for _, tpl := range templates {
		rec := dbmodels.TaskInstance{
			Stage:      stage,
			TemplateID: tpl.ID,
			Title:      tpl.Title,
			Kind:       tpl.Kind,
			Schedule:   tpl.Schedule,
			Priority:   tpl.Priority,
			IsRequired: tpl.IsRequired,
			Status:     models.TaskStatusNotStarted,
		}
		switch tpl.Schedule {
		case models.TaskScheduleApproachSequence:
			// срок по номеру среди задач-касаний, а не по позиции в шаблоне
			seq := approachIdx
			rec.SequenceIndex = &seq
			rec.DueDate = addDays(referenceDate, seq)
			approachIdx++
		default:
			if tpl.DueOffsetDays != nil {
				rec.DueDate = addDays(referenceDate, *tpl.DueOffsetDays)
			}
		}
		result = append(result, rec)
	}
	return result
}

func addDays(date time.Time, days int) *time.Time {
	due := date.AddDate(0, 0, days)
	return &due
}
