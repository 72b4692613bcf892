package pipeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hr-pipeline-backend/lib/participation"
	sessionstore "hr-pipeline-backend/lib/participation/session-store"
	participationstore "hr-pipeline-backend/lib/participation/store"
	"hr-pipeline-backend/lib/smtp"
	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
	"hr-pipeline-backend/lib/utils/apperrors"
	"hr-pipeline-backend/lib/utils/metrics"
	"hr-pipeline-backend/lib/utils/testdb"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

type notifierFake struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *notifierFake) Send(ctx context.Context, taskID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, taskID)
	return n.err
}

func (n *notifierFake) Sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string{}, n.sent...)
}

func newTestHandler(t *testing.T) (*impl, *gorm.DB, *notifierFake) {
	t.Helper()
	conn := testdb.New(t)
	notifier := &notifierFake{}
	handler := NewInstance(conn, stagecatalog.Default(), participation.NewInstance(conn, stagecatalog.Default(), true), notifier, 2*time.Second)
	return handler.(*impl), conn, notifier
}

func register(t *testing.T, handler Provider) string {
	t.Helper()
	id, err := handler.Register(context.Background(), candidateapimodels.CandidateData{
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@mail.ru",
		Source:    models.CandidateSourceJobBoard,
		Cohort:    "2024-spring",
	})
	require.NoError(t, err)
	return id
}

func countRows(t *testing.T, conn *gorm.DB, model interface{}, candidateID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(model).Where("candidate_id = ?", candidateID).Count(&count).Error)
	return count
}

func TestRegister(t *testing.T) {
	handler, conn, notifier := newTestHandler(t)
	id := register(t, handler)

	candidate, err := handler.GetCandidate(id)
	require.NoError(t, err)
	require.Equal(t, "Entry", candidate.CurrentStage)

	history, err := handler.History(id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, models.HistoryStatusInProgress, history[0].Status)

	tasks, err := handler.Tasks(id, "Entry")
	require.NoError(t, err)
	require.Len(t, tasks, len(handler.catalog.ListTemplates("Entry")))
	require.EqualValues(t, len(tasks), countRows(t, conn, &dbmodels.TaskInstance{}, id))

	// письма по задачам email уходят после фиксации
	require.Eventually(t, func() bool {
		return len(notifier.Sent()) == 2
	}, 2*time.Second, 20*time.Millisecond)

	t.Run(`Register validation check`, func(t *testing.T) {
		_, err := handler.Register(context.Background(), candidateapimodels.CandidateData{FirstName: "Иван"})
		require.True(t, apperrors.IsValidation(err))
	})
}

func TestAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run(`Advance to next stage check`, func(t *testing.T) {
		handler, _, _ := newTestHandler(t)
		id := register(t, handler)

		result, err := handler.Advance(ctx, id, "Company-Info-Session")
		require.NoError(t, err)
		require.Equal(t, "Entry", result.PreviousStage)
		require.Equal(t, "Company-Info-Session", result.History.Stage)
		require.Equal(t, models.HistoryStatusInProgress, result.History.Status)

		templates := handler.catalog.ListTemplates("Company-Info-Session")
		require.Len(t, result.Tasks, len(templates))
		for _, task := range result.Tasks {
			require.Equal(t, models.TaskStatusNotStarted, task.Status)
			require.Equal(t, result.History.ID, task.HistoryID)
			require.Equal(t, id, task.CandidateID)
		}

		history, err := handler.History(id)
		require.NoError(t, err)
		require.Len(t, history, 2)
		require.Equal(t, "Entry", history[0].Stage)
		require.Equal(t, models.HistoryStatusCompleted, history[0].Status)
		require.Equal(t, "Company-Info-Session", history[1].Stage)
		require.Equal(t, models.HistoryStatusInProgress, history[1].Status)

		candidate, err := handler.GetCandidate(id)
		require.NoError(t, err)
		require.Equal(t, "Company-Info-Session", candidate.CurrentStage)

		tasks, err := handler.Tasks(id, "Company-Info-Session")
		require.NoError(t, err)
		require.Len(t, tasks, len(templates))
	})

	t.Run(`Advance backward check`, func(t *testing.T) {
		handler, _, _ := newTestHandler(t)
		id := register(t, handler)
		_, err := handler.Advance(ctx, id, "Interview")
		require.NoError(t, err)
		result, err := handler.Advance(ctx, id, "Entry")
		require.NoError(t, err)
		require.Equal(t, "Interview", result.PreviousStage)
	})

	t.Run(`Advance unknown stage check`, func(t *testing.T) {
		handler, conn, _ := newTestHandler(t)
		id := register(t, handler)
		_, err := handler.Advance(ctx, id, "Unknown-Stage")
		require.True(t, apperrors.IsValidation(err))
		require.EqualValues(t, 1, countRows(t, conn, &dbmodels.StageHistory{}, id))
	})

	t.Run(`Advance unknown candidate check`, func(t *testing.T) {
		handler, _, _ := newTestHandler(t)
		_, err := handler.Advance(ctx, "missing", "Interview")
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run(`Advance rollback on task write error check`, func(t *testing.T) {
		handler, conn, _ := newTestHandler(t)
		id := register(t, handler)
		tasksBefore := countRows(t, conn, &dbmodels.TaskInstance{}, id)

		writeErr := errors.New("нет места на диске")
		err := conn.Callback().Create().Before("gorm:create").Register("test:fail_task_write", func(tx *gorm.DB) {
			if tx.Statement.Table == "task_instances" {
				_ = tx.AddError(writeErr)
			}
		})
		require.NoError(t, err)

		_, err = handler.Advance(ctx, id, "Company-Info-Session")
		require.Error(t, err)
		var transitionErr *apperrors.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		require.Equal(t, stepCreateTasks, transitionErr.Step)
		require.ErrorIs(t, err, writeErr)

		candidate, err := handler.GetCandidate(id)
		require.NoError(t, err)
		require.Equal(t, "Entry", candidate.CurrentStage)

		history, err := handler.History(id)
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.Equal(t, "Entry", history[0].Stage)
		require.Equal(t, models.HistoryStatusInProgress, history[0].Status)
		require.Equal(t, tasksBefore, countRows(t, conn, &dbmodels.TaskInstance{}, id))
	})

	t.Run(`Advance notification error check`, func(t *testing.T) {
		handler, _, notifier := newTestHandler(t)
		notifier.err = errors.New("smtp недоступен")
		id := register(t, handler)
		_, err := handler.Advance(ctx, id, "Aptitude-Test")
		require.NoError(t, err)
		require.Eventually(t, func() bool {
			return len(notifier.Sent()) == 3
		}, 2*time.Second, 20*time.Millisecond)
	})

	t.Run(`Advance without smtp check`, func(t *testing.T) {
		handler, _, notifier := newTestHandler(t)
		notifier.err = &apperrors.NotificationError{TaskID: "task", Err: smtp.ErrNotConfigured}
		id := register(t, handler)
		WaitNotifications()
		skipped := testutil.ToFloat64(metrics.NotificationsSent.WithLabelValues("skipped"))
		failed := testutil.ToFloat64(metrics.NotificationsSent.WithLabelValues("error"))

		_, err := handler.Advance(ctx, id, "Aptitude-Test")
		require.NoError(t, err)
		WaitNotifications()
		require.Len(t, notifier.Sent(), 3)
		require.Equal(t, skipped+1, testutil.ToFloat64(metrics.NotificationsSent.WithLabelValues("skipped")))
		require.Equal(t, failed, testutil.ToFloat64(metrics.NotificationsSent.WithLabelValues("error")))
	})

	t.Run(`Advance participation invite check`, func(t *testing.T) {
		handler, conn, _ := newTestHandler(t)
		id := register(t, handler)
		start := time.Now().Add(48 * time.Hour)
		sessionID, err := sessionstore.NewInstance(conn).Create(dbmodels.EventSession{
			Stage:   "Company-Info-Session",
			Title:   "Презентация компании",
			StartAt: start,
			EndAt:   start.Add(time.Hour),
		})
		require.NoError(t, err)

		_, err = handler.Advance(ctx, id, "Company-Info-Session")
		require.NoError(t, err)
		rec, err := participationstore.NewInstance(conn).Get(id, sessionID)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, models.ParticipationStatusPending, rec.Status)
	})

	t.Run(`history order with equal time check`, func(t *testing.T) {
		handler, _, _ := newTestHandler(t)
		fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		handler.now = func() time.Time { return fixed }
		id := register(t, handler)
		_, err := handler.Advance(ctx, id, "Company-Info-Session")
		require.NoError(t, err)
		_, err = handler.Advance(ctx, id, "Document-Screening")
		require.NoError(t, err)

		history, err := handler.History(id)
		require.NoError(t, err)
		require.Len(t, history, 3)
		require.True(t, history[1].CreatedAt.After(history[0].CreatedAt))
		require.True(t, history[2].CreatedAt.After(history[1].CreatedAt))
		require.Equal(t, "Document-Screening", history[2].Stage)
	})
}

func TestAdvanceConcurrent(t *testing.T) {
	handler, conn, _ := newTestHandler(t)
	id := register(t, handler)

	stages := []string{"Company-Info-Session", "Document-Screening", "Aptitude-Test", "Group-Discussion", "Interview"}
	wg := sync.WaitGroup{}
	for _, stage := range stages {
		wg.Add(1)
		go func(stage string) {
			defer wg.Done()
			_, err := handler.Advance(context.Background(), id, stage)
			if err != nil {
				assert.ErrorIs(t, err, apperrors.ErrConcurrentTransition)
			}
		}(stage)
	}
	wg.Wait()

	var inProgress []dbmodels.StageHistory
	require.NoError(t, conn.
		Where("candidate_id = ?", id).
		Where("status = ?", models.HistoryStatusInProgress).
		Find(&inProgress).Error)
	require.Len(t, inProgress, 1)

	candidate, err := handler.GetCandidate(id)
	require.NoError(t, err)
	require.Equal(t, inProgress[0].Stage, candidate.CurrentStage)
}

func TestSetOutcome(t *testing.T) {
	ctx := context.Background()
	handler, _, _ := newTestHandler(t)
	id := register(t, handler)
	history, err := handler.History(id)
	require.NoError(t, err)
	entryID := history[0].ID

	t.Run(`SetOutcome invalid status check`, func(t *testing.T) {
		err := handler.SetOutcome(ctx, id, entryID, "unknown")
		require.True(t, apperrors.IsValidation(err))
		err = handler.SetOutcome(ctx, id, entryID, models.HistoryStatusInProgress)
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`SetOutcome unknown entry check`, func(t *testing.T) {
		err := handler.SetOutcome(ctx, id, "missing", models.HistoryStatusPassed)
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run(`SetOutcome before Advance check`, func(t *testing.T) {
		require.NoError(t, handler.SetOutcome(ctx, id, entryID, models.HistoryStatusPassed))
		_, err := handler.Advance(ctx, id, "Company-Info-Session")
		require.NoError(t, err)
		history, err := handler.History(id)
		require.NoError(t, err)
		require.Len(t, history, 2)
		require.Equal(t, models.HistoryStatusPassed, history[0].Status)
		require.Equal(t, models.HistoryStatusInProgress, history[1].Status)
	})
}

func TestRecommendNextStage(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	id := register(t, handler)

	stage, ok, err := handler.RecommendNextStage(id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Company-Info-Session", stage)

	names := handler.catalog.StageNames()
	last := names[len(names)-1]
	_, err = handler.Advance(context.Background(), id, last)
	require.NoError(t, err)
	_, ok, err = handler.RecommendNextStage(id)
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = handler.RecommendNextStage("missing")
	require.True(t, apperrors.IsNotFound(err))
}

func TestUpdateTask(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	id := register(t, handler)
	tasks, err := handler.Tasks(id, "Entry")
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	status := models.TaskStatusCompleted
	notes := "Кандидат ответил"
	require.NoError(t, handler.UpdateTask(tasks[0].ID, candidateapimodels.TaskUpdate{Status: &status, Notes: &notes}))

	updated, err := handler.Tasks(id, "Entry")
	require.NoError(t, err)
	require.Len(t, updated, len(tasks))
	for _, task := range updated {
		if task.ID == tasks[0].ID {
			require.Equal(t, models.TaskStatusCompleted, task.Status)
			require.Equal(t, notes, task.Notes)
		}
	}

	bad := models.TaskStatus("done")
	err = handler.UpdateTask(tasks[0].ID, candidateapimodels.TaskUpdate{Status: &bad})
	require.True(t, apperrors.IsValidation(err))
	err = handler.UpdateTask("missing", candidateapimodels.TaskUpdate{Notes: &notes})
	require.True(t, apperrors.IsNotFound(err))
}
