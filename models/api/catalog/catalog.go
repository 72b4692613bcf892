package catalogapimodels

import (
	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
	"hr-pipeline-backend/models"
)

type TemplateView struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Kind          models.TaskKind     `json:"kind"`
	Schedule      models.TaskSchedule `json:"schedule"`
	Order         int                 `json:"order"`
	Priority      int                 `json:"priority"`
	IsRequired    bool                `json:"is_required"`
	DueOffsetDays *int                `json:"due_offset_days,omitempty"`
}

type StageView struct {
	Name      string         `json:"name"`
	Order     int            `json:"order"`
	Group     string         `json:"group"`
	Templates []TemplateView `json:"templates"`
}

func StageListConvert(stages []stagecatalog.Stage) []StageView {
	result := make([]StageView, 0, len(stages))
	for _, stage := range stages {
		view := StageView{
			Name:      stage.Name,
			Order:     stage.Order,
			Group:     stage.Group,
			Templates: make([]TemplateView, 0, len(stage.Templates)),
		}
		for _, tmpl := range stage.Templates {
			view.Templates = append(view.Templates, TemplateView{
				ID:            tmpl.ID,
				Title:         tmpl.Title,
				Kind:          tmpl.Kind,
				Schedule:      tmpl.Schedule,
				Order:         tmpl.Order,
				Priority:      tmpl.Priority,
				IsRequired:    tmpl.IsRequired,
				DueOffsetDays: tmpl.DueOffsetDays,
			})
		}
		result = append(result, view)
	}
	return result
}
