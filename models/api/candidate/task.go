package candidateapimodels

import (
	"time"

	"hr-pipeline-backend/lib/utils/apperrors"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type TaskView struct {
	ID            string              `json:"id"`
	CandidateID   string              `json:"candidate_id"`
	Stage         string              `json:"stage"`
	TemplateID    string              `json:"template_id"`
	Title         string              `json:"title"`
	Kind          models.TaskKind     `json:"kind"`
	Schedule      models.TaskSchedule `json:"schedule"`
	SequenceIndex *int                `json:"sequence_index,omitempty"`
	Priority      int                 `json:"priority"`
	IsRequired    bool                `json:"is_required"`
	Status        models.TaskStatus   `json:"status"`
	DueDate       *time.Time          `json:"due_date,omitempty"`
	Notes         string              `json:"notes"`
}

func TaskConvert(rec dbmodels.TaskInstance) TaskView {
	return TaskView{
		ID:            rec.ID,
		CandidateID:   rec.CandidateID,
		Stage:         rec.Stage,
		TemplateID:    rec.TemplateID,
		Title:         rec.Title,
		Kind:          rec.Kind,
		Schedule:      rec.Schedule,
		SequenceIndex: rec.SequenceIndex,
		Priority:      rec.Priority,
		IsRequired:    rec.IsRequired,
		Status:        rec.Status,
		DueDate:       rec.DueDate,
		Notes:         rec.Notes,
	}
}

func TaskListConvert(list []dbmodels.TaskInstance) []TaskView {
	result := make([]TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, TaskConvert(rec))
	}
	return result
}

// TaskUpdate изменение задачи, количество задач этапа не меняется
type TaskUpdate struct {
	Status  *models.TaskStatus `json:"status"`   // Новый статус
	DueDate *time.Time         `json:"due_date"` // Новый срок
	Notes   *string            `json:"notes"`    // Заметки
}

func (t TaskUpdate) Validate() error {
	if t.Status == nil && t.DueDate == nil && t.Notes == nil {
		return apperrors.NewValidationError("", "нет изменений")
	}
	if t.Status != nil && !t.Status.IsValid() {
		return apperrors.NewValidationError("status", "неизвестный статус задачи %q", *t.Status)
	}
	return nil
}

func (t TaskUpdate) ToMap() map[string]interface{} {
	updMap := map[string]interface{}{}
	if t.Status != nil {
		updMap["status"] = *t.Status
	}
	if t.DueDate != nil {
		updMap["due_date"] = *t.DueDate
	}
	if t.Notes != nil {
		updMap["notes"] = *t.Notes
	}
	return updMap
}
