package participation

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	sessionstore "hr-pipeline-backend/lib/participation/session-store"
	participationstore "hr-pipeline-backend/lib/participation/store"
	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
	"hr-pipeline-backend/lib/utils/apperrors"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
	"hr-pipeline-backend/lib/utils/metrics"
	"hr-pipeline-backend/models"
	participationapimodels "hr-pipeline-backend/models/api/participation"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	// RecordResponse сохраняет решение кандидата об участии, повторный ответ перезаписывает предыдущий
	RecordResponse(ctx context.Context, candidateID, sessionID string, status models.ParticipationStatus) (*dbmodels.Participation, error)
	// GetStatus статус участия кандидата в мероприятии этапа (для его потока), not_set если ответа нет
	GetStatus(candidateID, stage string) (models.ParticipationStatus, error)
	CreateSession(data participationapimodels.SessionData) (id string, err error)
	ListSessions(stage string) ([]participationapimodels.SessionView, error)
	// Invite создает запись pending при входе кандидата на этап с мероприятием; вызывается в транзакции перевода
	Invite(tx *gorm.DB, candidate dbmodels.Candidate, stage string) (*dbmodels.Participation, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit("stageCatalog", stagecatalog.Instance)
	Instance = NewInstance(db.DB, stagecatalog.Instance, *config.Conf.Pipeline.EnforceCapacity)
}

func NewInstance(DB *gorm.DB, catalog stagecatalog.Provider, enforceCapacity bool) Provider {
	return &impl{
		db:                 DB,
		catalog:            catalog,
		enforceCapacity:    enforceCapacity,
		candidateStore:     candidatestore.NewInstance(DB),
		sessionStore:       sessionstore.NewInstance(DB),
		participationStore: participationstore.NewInstance(DB),
	}
}

type impl struct {
	db                 *gorm.DB
	catalog            stagecatalog.Provider
	enforceCapacity    bool
	candidateStore     candidatestore.Provider
	sessionStore       sessionstore.Provider
	participationStore participationstore.Provider
}

func (i impl) getLogger(candidateID, sessionID string) *log.Entry {
	logger := log.WithField("candidate_id", candidateID)
	if sessionID != "" {
		logger = logger.WithField("session_id", sessionID)
	}
	return logger
}

func (i impl) RecordResponse(ctx context.Context, candidateID, sessionID string, status models.ParticipationStatus) (*dbmodels.Participation, error) {
	logger := i.getLogger(candidateID, sessionID).WithField("status", status)
	if !status.IsValid() {
		metrics.ParticipationResponses.WithLabelValues(string(status), "validation").Inc()
		return nil, apperrors.NewValidationError("status", "недопустимый статус участия: %q", status)
	}
	var result *dbmodels.Participation
	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessionStore := sessionstore.NewInstance(tx)
		participationStore := participationstore.NewInstance(tx)

		// строка мероприятия заблокирована до чтения прошлого ответа, счетчик меняется один раз на кандидата
		session, err := sessionStore.GetByIDForUpdate(sessionID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения мероприятия")
		}
		if session == nil {
			return apperrors.NewNotFoundError("мероприятие", sessionID)
		}
		candidate, err := candidatestore.NewInstance(tx).GetByID(candidateID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения кандидата")
		}
		if candidate == nil {
			return apperrors.NewNotFoundError("кандидат", candidateID)
		}
		prev, err := participationStore.Get(candidateID, sessionID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения ответа об участии")
		}
		wasParticipating := prev != nil && prev.Status == models.ParticipationStatusParticipate
		isParticipating := status == models.ParticipationStatusParticipate
		switch {
		case isParticipating && !wasParticipating:
			ok, err := sessionStore.IncParticipants(sessionID, i.enforceCapacity)
			if err != nil {
				return errors.Wrap(err, "ошибка изменения количества участников")
			}
			if !ok {
				return apperrors.ErrCapacityExceeded
			}
		case !isParticipating && wasParticipating:
			if err := sessionStore.DecParticipants(sessionID); err != nil {
				return errors.Wrap(err, "ошибка изменения количества участников")
			}
		}
		result, err = participationStore.Upsert(dbmodels.Participation{
			CandidateID: candidateID,
			SessionID:   sessionID,
			Status:      status,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения ответа об участии")
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCapacityExceeded):
			metrics.ParticipationResponses.WithLabelValues(string(status), "capacity").Inc()
			logger.Warn("на мероприятии нет свободных мест")
		case apperrors.IsNotFound(err):
			metrics.ParticipationResponses.WithLabelValues(string(status), "not_found").Inc()
			logger.WithError(err).Warn("ответ об участии не сохранен")
		default:
			metrics.ParticipationResponses.WithLabelValues(string(status), "error").Inc()
			logger.WithError(err).Error("ошибка сохранения ответа об участии")
		}
		return nil, err
	}
	metrics.ParticipationResponses.WithLabelValues(string(status), "ok").Inc()
	logger.Info("ответ об участии сохранен")
	return result, nil
}

func (i impl) GetStatus(candidateID, stage string) (models.ParticipationStatus, error) {
	logger := i.getLogger(candidateID, "").WithField("stage", stage)
	candidate, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения кандидата")
		return "", err
	}
	if candidate == nil {
		return "", apperrors.NewNotFoundError("кандидат", candidateID)
	}
	session, err := i.sessionStore.FindByStage(stage, candidate.Cohort)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска мероприятия этапа")
		return "", err
	}
	if session == nil {
		return models.ParticipationStatusNotSet, nil
	}
	rec, err := i.participationStore.Get(candidateID, session.ID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения ответа об участии")
		return "", err
	}
	if rec == nil {
		return models.ParticipationStatusNotSet, nil
	}
	return rec.Status, nil
}

func (i impl) CreateSession(data participationapimodels.SessionData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	if !i.catalog.IsStage(data.Stage) {
		return "", apperrors.NewValidationError("stage", "этап %q отсутствует в каталоге", data.Stage)
	}
	id, err = i.sessionStore.Create(dbmodels.EventSession{
		Stage:           data.Stage,
		Cohort:          data.Cohort,
		Title:           data.Title,
		StartAt:         data.StartAt,
		EndAt:           data.EndAt,
		Venue:           data.Venue,
		MaxParticipants: data.MaxParticipants,
	})
	if err != nil {
		log.WithField("stage", data.Stage).WithError(err).Error("ошибка создания мероприятия")
		return "", err
	}
	return id, nil
}

func (i impl) ListSessions(stage string) ([]participationapimodels.SessionView, error) {
	list, err := i.sessionStore.List(stage)
	if err != nil {
		log.WithField("stage", stage).WithError(err).Error("ошибка получения списка мероприятий")
		return nil, err
	}
	result := make([]participationapimodels.SessionView, 0, len(list))
	for _, rec := range list {
		result = append(result, participationapimodels.SessionConvert(rec))
	}
	return result, nil
}

func (i impl) Invite(tx *gorm.DB, candidate dbmodels.Candidate, stage string) (*dbmodels.Participation, error) {
	session, err := sessionstore.NewInstance(tx).FindByStage(stage, candidate.Cohort)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка поиска мероприятия этапа")
	}
	if session == nil {
		return nil, nil
	}
	participationStore := participationstore.NewInstance(tx)
	err = participationStore.CreateIfAbsent(dbmodels.Participation{
		CandidateID: candidate.ID,
		SessionID:   session.ID,
		Status:      models.ParticipationStatusPending,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания приглашения на мероприятие")
	}
	return participationStore.Get(candidate.ID, session.ID)
}
