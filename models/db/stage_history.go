package dbmodels

import "hr-pipeline-backend/models"

// StageHistory запись о прохождении кандидатом этапа, создается при каждом переводе
type StageHistory struct {
	BaseModel
	CandidateID string               `gorm:"type:varchar(36);index"`
	Stage       string               `gorm:"type:varchar(255);index"`
	Status      models.HistoryStatus `gorm:"type:varchar(50);index"`
}
