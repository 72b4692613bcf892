package candidateapimodels

import (
	"net/mail"
	"strings"
	"time"

	"hr-pipeline-backend/lib/utils/apperrors"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
)

type CandidateData struct {
	FirstName  string                 `json:"first_name"`  // Имя
	LastName   string                 `json:"last_name"`   // Фамилия
	MiddleName string                 `json:"middle_name"` // Отчество
	Email      string                 `json:"email"`       // Почта, на нее уходят задачи типа email
	Phone      string                 `json:"phone"`       // Телефон
	Source     models.CandidateSource `json:"source"`      // Канал привлечения
	Cohort     string                 `json:"cohort"`      // Поток набора
	Comment    string                 `json:"comment"`     // Комментарий
}

func (c CandidateData) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" && strings.TrimSpace(c.LastName) == "" {
		return apperrors.NewValidationError("first_name", "не указано имя кандидата")
	}
	if strings.TrimSpace(string(c.Source)) == "" {
		return apperrors.NewValidationError("source", "не указан источник кандидата")
	}
	if !c.Source.IsValid() {
		return apperrors.NewValidationError("source", "неизвестный источник кандидата %q", c.Source)
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return apperrors.NewValidationError("email", "некорректный адрес почты")
		}
	}
	return nil
}

type CandidateFilter struct {
	apimodels.Pagination
	Stage  string                 `json:"stage"`  // Текущий этап
	Source models.CandidateSource `json:"source"` // Источник
	Cohort string                 `json:"cohort"` // Поток набора
	Search string                 `json:"search"` // Поиск по ФИО, почте, телефону
}

type CandidateView struct {
	ID           string                 `json:"id"`
	FIO          string                 `json:"fio"`
	FirstName    string                 `json:"first_name"`
	LastName     string                 `json:"last_name"`
	MiddleName   string                 `json:"middle_name"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	Source       models.CandidateSource `json:"source"`
	Cohort       string                 `json:"cohort"`
	CurrentStage string                 `json:"current_stage"`
	Comment      string                 `json:"comment"`
	CreatedAt    time.Time              `json:"created_at"`
}

func CandidateConvert(rec dbmodels.Candidate) CandidateView {
	return CandidateView{
		ID:           rec.ID,
		FIO:          rec.GetFIO(),
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		MiddleName:   rec.MiddleName,
		Email:        rec.Email,
		Phone:        rec.Phone,
		Source:       rec.Source,
		Cohort:       rec.Cohort,
		CurrentStage: rec.CurrentStage,
		Comment:      rec.Comment,
		CreatedAt:    rec.CreatedAt,
	}
}
