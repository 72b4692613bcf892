package candidateapimodels

import (
	"time"

	"hr-pipeline-backend/lib/utils/apperrors"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type StageHistoryView struct {
	ID        string               `json:"id"`
	Stage     string               `json:"stage"`  // Этап
	Status    models.HistoryStatus `json:"status"` // Исход на этапе
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func StageHistoryConvert(rec dbmodels.StageHistory) StageHistoryView {
	return StageHistoryView{
		ID:        rec.ID,
		Stage:     rec.Stage,
		Status:    rec.Status,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

type OutcomeData struct {
	Status models.HistoryStatus `json:"status"` // Исход на этапе
}

func (o OutcomeData) Validate() error {
	if !o.Status.IsValid() {
		return apperrors.NewValidationError("status", "неизвестный статус этапа %q", o.Status)
	}
	if o.Status == models.HistoryStatusInProgress {
		return apperrors.NewValidationError("status", "статус %q устанавливается только при переводе на этап", o.Status)
	}
	return nil
}

type AdvanceResultView struct {
	PreviousStage string           `json:"previous_stage"` // Этап, с которого переведен кандидат
	History       StageHistoryView `json:"history"`        // Новая запись истории
	Tasks         []TaskView       `json:"tasks"`          // Созданные задачи этапа
}
