package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	"hr-pipeline-backend/lib/notification"
	"hr-pipeline-backend/lib/participation"
	"hr-pipeline-backend/lib/smtp"
	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
	stagehistorystore "hr-pipeline-backend/lib/stage-history/store"
	taskstore "hr-pipeline-backend/lib/task/store"
	tasktemplate "hr-pipeline-backend/lib/task-template"
	"hr-pipeline-backend/lib/utils/apperrors"
	"hr-pipeline-backend/lib/utils/lock"
	"hr-pipeline-backend/lib/utils/metrics"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

const (
	stepCreateCandidate   = "create-candidate"
	stepCompletePrevious  = "complete-previous"
	stepInsertHistory     = "insert-history"
	stepUpdateCandidate   = "update-candidate"
	stepCreateTasks       = "create-tasks"
	stepInviteParticipant = "invite-participation"

	notifyTimeout = 30 * time.Second
)

// AdvanceResult результат перевода кандидата на этап
type AdvanceResult struct {
	PreviousStage string
	History       dbmodels.StageHistory
	Tasks         []dbmodels.TaskInstance
}

type Provider interface {
	// Register создает кандидата на первом этапе каталога
	Register(ctx context.Context, data candidateapimodels.CandidateData) (id string, err error)
	// Advance переводит кандидата на любой этап каталога, все записи выполняются в одной транзакции
	Advance(ctx context.Context, candidateID, targetStage string) (*AdvanceResult, error)
	// RecommendNextStage следующий этап по каталогу, ok=false для последнего или неизвестного этапа
	RecommendNextStage(candidateID string) (stage string, ok bool, err error)
	SetOutcome(ctx context.Context, candidateID, historyID string, status models.HistoryStatus) error
	UpdateTask(taskID string, data candidateapimodels.TaskUpdate) error
	GetCandidate(candidateID string) (*candidateapimodels.CandidateView, error)
	ListCandidates(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error)
	History(candidateID string) ([]candidateapimodels.StageHistoryView, error)
	Tasks(candidateID, stage string) ([]candidateapimodels.TaskView, error)
}

var Instance Provider

// отправки уведомлений, запущенные после фиксации переводов
var notifyWG sync.WaitGroup

// WaitNotifications ждет завершения начатых отправок уведомлений, нужно перед остановкой процесса
func WaitNotifications() {
	notifyWG.Wait()
}

func NewHandler() {
	Instance = NewInstance(
		db.DB,
		stagecatalog.Instance,
		participation.Instance,
		notification.Instance,
		config.Conf.TransitionLockWait(),
	)
}

func NewInstance(DB *gorm.DB, catalog stagecatalog.Provider, participationTracker participation.Provider,
	notifier notification.Provider, lockWait time.Duration) Provider {
	return &impl{
		db:                   DB,
		catalog:              catalog,
		expander:             tasktemplate.NewInstance(catalog),
		participationTracker: participationTracker,
		notifier:             notifier,
		lockWait:             lockWait,
		candidateStore:       candidatestore.NewInstance(DB),
		historyStore:         stagehistorystore.NewInstance(DB),
		taskStore:            taskstore.NewInstance(DB),
		now:                  time.Now,
	}
}

type impl struct {
	db                   *gorm.DB
	catalog              stagecatalog.Provider
	expander             tasktemplate.Provider
	participationTracker participation.Provider
	notifier             notification.Provider
	lockWait             time.Duration
	candidateStore       candidatestore.Provider
	historyStore         stagehistorystore.Provider
	taskStore            taskstore.Provider
	now                  func() time.Time
}

func (i impl) getLogger(candidateID, stage string) *log.Entry {
	logger := log.WithField("candidate_id", candidateID)
	if stage != "" {
		logger = logger.WithField("stage", stage)
	}
	return logger
}

func (i impl) Register(ctx context.Context, data candidateapimodels.CandidateData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	firstStage := i.catalog.FirstStage()
	var result *AdvanceResult
	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := dbmodels.Candidate{
			FirstName:  data.FirstName,
			LastName:   data.LastName,
			MiddleName: data.MiddleName,
			Email:      data.Email,
			Phone:      data.Phone,
			Source:     data.Source,
			Cohort:     data.Cohort,
			Comment:    data.Comment,
		}
		id, err = candidatestore.NewInstance(tx).Create(rec)
		if err != nil {
			return &apperrors.TransitionError{TargetStage: firstStage, Step: stepCreateCandidate, Err: err}
		}
		rec.ID = id
		result, err = i.applyTransition(tx, rec, firstStage)
		return err
	})
	logger := i.getLogger(id, firstStage)
	if err != nil {
		metrics.StageTransitions.WithLabelValues(firstStage, transitionResult(err)).Inc()
		logger.WithError(err).Error("ошибка регистрации кандидата")
		return "", err
	}
	metrics.StageTransitions.WithLabelValues(firstStage, "ok").Inc()
	i.afterTransition(result)
	logger.Info("кандидат зарегистрирован")
	return id, nil
}

func (i impl) Advance(ctx context.Context, candidateID, targetStage string) (*AdvanceResult, error) {
	logger := i.getLogger(candidateID, targetStage)
	if !i.catalog.IsStage(targetStage) {
		metrics.StageTransitions.WithLabelValues(targetStage, "validation").Inc()
		return nil, apperrors.NewValidationError("stage", "этап %q отсутствует в каталоге", targetStage)
	}
	var result *AdvanceResult
	locked, err := lock.WithDelay(ctx, "candidate:"+candidateID, i.lockWait, func() error {
		return i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			candidate, err := candidatestore.NewInstance(tx).GetByID(candidateID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения кандидата")
			}
			if candidate == nil {
				return apperrors.NewNotFoundError("кандидат", candidateID)
			}
			result, err = i.applyTransition(tx, *candidate, targetStage)
			return err
		})
	})
	if err == nil && !locked {
		err = apperrors.ErrConcurrentTransition
	}
	if err != nil {
		metrics.StageTransitions.WithLabelValues(targetStage, transitionResult(err)).Inc()
		switch {
		case apperrors.IsNotFound(err), errors.Is(err, apperrors.ErrConcurrentTransition):
			logger.WithError(err).Warn("кандидат не переведен на этап")
		default:
			logger.WithError(err).Error("ошибка перевода кандидата на этап")
		}
		return nil, err
	}
	metrics.StageTransitions.WithLabelValues(targetStage, "ok").Inc()
	i.afterTransition(result)
	logger.
		WithField("previous_stage", result.PreviousStage).
		WithField("tasks", len(result.Tasks)).
		Info("кандидат переведен на этап")
	return result, nil
}

// applyTransition записи перевода; вызывается только внутри транзакции tx
func (i impl) applyTransition(tx *gorm.DB, candidate dbmodels.Candidate, targetStage string) (*AdvanceResult, error) {
	historyStore := stagehistorystore.NewInstance(tx)
	previousStage := candidate.CurrentStage
	transitionErr := func(step string, err error) error {
		return &apperrors.TransitionError{CandidateID: candidate.ID, TargetStage: targetStage, Step: step, Err: err}
	}

	last, err := historyStore.GetLast(candidate.ID)
	if err != nil {
		return nil, transitionErr(stepCompletePrevious, err)
	}
	current, err := historyStore.GetInProgress(candidate.ID)
	if err != nil {
		return nil, transitionErr(stepCompletePrevious, err)
	}
	if current != nil {
		err = historyStore.UpdateStatus(candidate.ID, current.ID, models.HistoryStatusCompleted)
		if err != nil {
			return nil, transitionErr(stepCompletePrevious, err)
		}
	}

	// порядок записей истории задается временем создания
	enteredAt := i.now()
	if last != nil && !enteredAt.After(last.CreatedAt) {
		enteredAt = last.CreatedAt.Add(time.Millisecond)
	}
	history, err := historyStore.Create(dbmodels.StageHistory{
		BaseModel: dbmodels.BaseModel{
			CreatedAt: enteredAt,
		},
		CandidateID: candidate.ID,
		Stage:       targetStage,
		Status:      models.HistoryStatusInProgress,
	})
	if err != nil {
		return nil, transitionErr(stepInsertHistory, err)
	}

	updated, err := candidatestore.NewInstance(tx).UpdateStage(candidate.ID, previousStage, targetStage)
	if err != nil {
		return nil, transitionErr(stepUpdateCandidate, err)
	}
	if !updated {
		return nil, apperrors.ErrConcurrentTransition
	}

	tasks := i.expander.Expand(targetStage, enteredAt)
	for k := range tasks {
		tasks[k].CandidateID = candidate.ID
		tasks[k].HistoryID = history.ID
	}
	tasks, err = taskstore.NewInstance(tx).CreateBatch(tasks)
	if err != nil {
		return nil, transitionErr(stepCreateTasks, err)
	}

	if i.participationTracker != nil {
		candidate.CurrentStage = targetStage
		_, err = i.participationTracker.Invite(tx, candidate, targetStage)
		if err != nil {
			return nil, transitionErr(stepInviteParticipant, err)
		}
	}

	return &AdvanceResult{
		PreviousStage: previousStage,
		History:       *history,
		Tasks:         tasks,
	}, nil
}

func (i impl) afterTransition(result *AdvanceResult) {
	if result == nil {
		return
	}
	for _, task := range result.Tasks {
		metrics.TasksCreated.WithLabelValues(task.Stage, string(task.Kind)).Inc()
	}
	i.dispatchNotifications(result.Tasks)
}

// dispatchNotifications отправка писем после фиксации перевода, ошибки только логируются
func (i impl) dispatchNotifications(tasks []dbmodels.TaskInstance) {
	if i.notifier == nil {
		return
	}
	ids := []string{}
	for _, task := range tasks {
		if task.Kind == models.TaskKindEmail {
			ids = append(ids, task.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	notifyWG.Add(1)
	go func() {
		defer notifyWG.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", fmt.Sprint(r)).Error("паника при отправке уведомлений")
			}
		}()
		for _, id := range ids {
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			err := i.notifier.Send(ctx, id)
			cancel()
			if errors.Is(err, smtp.ErrNotConfigured) {
				metrics.NotificationsSent.WithLabelValues("skipped").Inc()
				log.WithField("task_id", id).Debug("уведомление по задаче пропущено: smtp не настроен")
				continue
			}
			if err != nil {
				metrics.NotificationsSent.WithLabelValues("error").Inc()
				log.WithField("task_id", id).WithError(err).Warn("уведомление по задаче не отправлено")
				continue
			}
			metrics.NotificationsSent.WithLabelValues("ok").Inc()
		}
	}()
}

func transitionResult(err error) string {
	switch {
	case apperrors.IsValidation(err):
		return "validation"
	case apperrors.IsNotFound(err):
		return "not_found"
	case errors.Is(err, apperrors.ErrConcurrentTransition):
		return "conflict"
	}
	return "error"
}
