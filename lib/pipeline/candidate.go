package pipeline

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hr-pipeline-backend/lib/utils/apperrors"
	"hr-pipeline-backend/lib/utils/lock"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
)

func (i impl) RecommendNextStage(candidateID string) (stage string, ok bool, err error) {
	candidate, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		i.getLogger(candidateID, "").WithError(err).Error("ошибка получения кандидата")
		return "", false, err
	}
	if candidate == nil {
		return "", false, apperrors.NewNotFoundError("кандидат", candidateID)
	}
	stage, ok = i.catalog.NextStage(candidate.CurrentStage)
	return stage, ok, nil
}

func (i impl) SetOutcome(ctx context.Context, candidateID, historyID string, status models.HistoryStatus) error {
	logger := i.getLogger(candidateID, "").
		WithField("history_id", historyID).
		WithField("status", status)
	if err := (candidateapimodels.OutcomeData{Status: status}).Validate(); err != nil {
		return err
	}
	// под той же блокировкой, что и перевод, чтобы не затереть запись, закрываемую переводом
	locked, err := lock.WithDelay(ctx, "candidate:"+candidateID, i.lockWait, func() error {
		rec, err := i.historyStore.GetByID(candidateID, historyID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения записи истории")
		}
		if rec == nil {
			return apperrors.NewNotFoundError("запись истории", historyID)
		}
		return i.historyStore.UpdateStatus(candidateID, historyID, status)
	})
	if err == nil && !locked {
		err = apperrors.ErrConcurrentTransition
	}
	if err != nil {
		logger.WithError(err).Error("ошибка установки исхода этапа")
		return err
	}
	logger.Info("исход этапа установлен")
	return nil
}

func (i impl) UpdateTask(taskID string, data candidateapimodels.TaskUpdate) error {
	logger := log.WithField("task_id", taskID)
	if err := data.Validate(); err != nil {
		return err
	}
	task, err := i.taskStore.GetByID(taskID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения задачи")
		return err
	}
	if task == nil {
		return apperrors.NewNotFoundError("задача", taskID)
	}
	err = i.taskStore.Update(task.CandidateID, taskID, data.ToMap())
	if err != nil {
		logger.WithError(err).Error("ошибка изменения задачи")
		return err
	}
	return nil
}

func (i impl) GetCandidate(candidateID string) (*candidateapimodels.CandidateView, error) {
	rec, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		i.getLogger(candidateID, "").WithError(err).Error("ошибка получения кандидата")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NewNotFoundError("кандидат", candidateID)
	}
	result := candidateapimodels.CandidateConvert(*rec)
	return &result, nil
}

func (i impl) ListCandidates(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error) {
	rowCount, err = i.candidateStore.ListCount(filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения количества кандидатов")
		return nil, 0, err
	}
	recList, err := i.candidateStore.List(filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка кандидатов")
		return nil, 0, err
	}
	list = make([]candidateapimodels.CandidateView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, candidateapimodels.CandidateConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) History(candidateID string) ([]candidateapimodels.StageHistoryView, error) {
	if _, err := i.GetCandidate(candidateID); err != nil {
		return nil, err
	}
	recList, err := i.historyStore.ListByCandidate(candidateID)
	if err != nil {
		i.getLogger(candidateID, "").WithError(err).Error("ошибка получения истории кандидата")
		return nil, err
	}
	result := make([]candidateapimodels.StageHistoryView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, candidateapimodels.StageHistoryConvert(rec))
	}
	return result, nil
}

func (i impl) Tasks(candidateID, stage string) ([]candidateapimodels.TaskView, error) {
	if _, err := i.GetCandidate(candidateID); err != nil {
		return nil, err
	}
	recList, err := i.taskStore.ListByCandidate(candidateID, stage)
	if err != nil {
		i.getLogger(candidateID, stage).WithError(err).Error("ошибка получения задач кандидата")
		return nil, err
	}
	return candidateapimodels.TaskListConvert(recList), nil
}
