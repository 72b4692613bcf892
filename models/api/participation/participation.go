package participationapimodels

import (
	"strings"
	"time"

	"hr-pipeline-backend/lib/utils/apperrors"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type ResponseData struct {
	CandidateID string                     `json:"candidate_id"` // Идентификатор кандидата
	SessionID   string                     `json:"session_id"`   // Идентификатор мероприятия
	Status      models.ParticipationStatus `json:"status"`       // participate/not_participate/pending
}

func (r ResponseData) Validate() error {
	if r.CandidateID == "" {
		return apperrors.NewValidationError("candidate_id", "не указан идентификатор кандидата")
	}
	if r.SessionID == "" {
		return apperrors.NewValidationError("session_id", "не указан идентификатор мероприятия")
	}
	return nil
}

type ParticipationView struct {
	ID          string                     `json:"id"`
	CandidateID string                     `json:"candidate_id"`
	SessionID   string                     `json:"session_id"`
	Status      models.ParticipationStatus `json:"status"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

func ParticipationConvert(rec dbmodels.Participation) ParticipationView {
	return ParticipationView{
		ID:          rec.ID,
		CandidateID: rec.CandidateID,
		SessionID:   rec.SessionID,
		Status:      rec.Status,
		UpdatedAt:   rec.UpdatedAt,
	}
}

type SessionData struct {
	Stage           string    `json:"stage"`            // Этап, к которому привязано мероприятие
	Cohort          string    `json:"cohort"`           // Поток набора, пусто - для всех
	Title           string    `json:"title"`            // Название
	StartAt         time.Time `json:"start_at"`         // Начало
	EndAt           time.Time `json:"end_at"`           // Окончание
	Venue           string    `json:"venue"`            // Место проведения
	MaxParticipants *int      `json:"max_participants"` // Максимум участников
}

func (s SessionData) Validate() error {
	if strings.TrimSpace(s.Stage) == "" {
		return apperrors.NewValidationError("stage", "не указан этап мероприятия")
	}
	if strings.TrimSpace(s.Title) == "" {
		return apperrors.NewValidationError("title", "не указано название мероприятия")
	}
	if s.StartAt.IsZero() || s.EndAt.IsZero() {
		return apperrors.NewValidationError("start_at", "не указано время проведения")
	}
	if s.EndAt.Before(s.StartAt) {
		return apperrors.NewValidationError("end_at", "окончание мероприятия раньше начала")
	}
	if s.MaxParticipants != nil && *s.MaxParticipants < 0 {
		return apperrors.NewValidationError("max_participants", "максимум участников не может быть отрицательным")
	}
	return nil
}

type SessionView struct {
	ID                  string    `json:"id"`
	Stage               string    `json:"stage"`
	Cohort              string    `json:"cohort"`
	Title               string    `json:"title"`
	StartAt             time.Time `json:"start_at"`
	EndAt               time.Time `json:"end_at"`
	Venue               string    `json:"venue"`
	MaxParticipants     *int      `json:"max_participants,omitempty"`
	CurrentParticipants int       `json:"current_participants"`
}

func SessionConvert(rec dbmodels.EventSession) SessionView {
	return SessionView{
		ID:                  rec.ID,
		Stage:               rec.Stage,
		Cohort:              rec.Cohort,
		Title:               rec.Title,
		StartAt:             rec.StartAt,
		EndAt:               rec.EndAt,
		Venue:               rec.Venue,
		MaxParticipants:     rec.MaxParticipants,
		CurrentParticipants: rec.CurrentParticipants,
	}
}
