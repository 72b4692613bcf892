package dbmodels

import "hr-pipeline-backend/models"

// Participation ответ кандидата об участии, одна запись на пару кандидат/мероприятие
type Participation struct {
	BaseModel
	CandidateID string                     `gorm:"type:varchar(36);uniqueIndex:idx_participation_candidate_session"`
	SessionID   string                     `gorm:"type:varchar(36);uniqueIndex:idx_participation_candidate_session"`
	Status      models.ParticipationStatus `gorm:"type:varchar(50)"`
}
