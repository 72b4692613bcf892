package notification

import (
	"bytes"
	"context"
	"text/template"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	"hr-pipeline-backend/lib/smtp"
	taskstore "hr-pipeline-backend/lib/task/store"
	"hr-pipeline-backend/lib/utils/apperrors"
	dbmodels "hr-pipeline-backend/models/db"
)

// Provider отправка писем кандидату по задачам типа email
type Provider interface {
	Send(ctx context.Context, taskID string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, smtp.Instance, config.Conf.Smtp.Sender)
}

func NewInstance(DB *gorm.DB, sender smtp.Provider, from string) Provider {
	return &impl{
		taskStore:      taskstore.NewInstance(DB),
		candidateStore: candidatestore.NewInstance(DB),
		sender:         sender,
		from:           from,
	}
}

type impl struct {
	taskStore      taskstore.Provider
	candidateStore candidatestore.Provider
	sender         smtp.Provider
	from           string
}

var bodyTemplate = template.Must(template.New("task-email").Parse(
	`Здравствуйте, {{.Candidate.FirstName}}!

{{.Task.Title}} (этап "{{.Task.Stage}}").
{{- if .Task.DueDate}}
Просим ответить до {{.Task.DueDate.Format "02.01.2006"}}.
{{- end}}

С уважением, служба подбора персонала`))

type messageData struct {
	Candidate dbmodels.Candidate
	Task      dbmodels.TaskInstance
}

func (i impl) Send(ctx context.Context, taskID string) error {
	logger := log.WithField("task_id", taskID)
	if err := ctx.Err(); err != nil {
		return &apperrors.NotificationError{TaskID: taskID, Err: err}
	}
	task, err := i.taskStore.GetByID(taskID)
	if err != nil {
		return &apperrors.NotificationError{TaskID: taskID, Err: errors.Wrap(err, "ошибка получения задачи")}
	}
	if task == nil {
		return &apperrors.NotificationError{TaskID: taskID, Err: apperrors.NewNotFoundError("задача", taskID)}
	}
	logger = logger.WithField("candidate_id", task.CandidateID)
	candidate, err := i.candidateStore.GetByID(task.CandidateID)
	if err != nil {
		return &apperrors.NotificationError{TaskID: taskID, Err: errors.Wrap(err, "ошибка получения кандидата")}
	}
	if candidate == nil {
		return &apperrors.NotificationError{TaskID: taskID, Err: apperrors.NewNotFoundError("кандидат", task.CandidateID)}
	}
	if !i.sender.IsConfigured() {
		return &apperrors.NotificationError{TaskID: taskID, Err: smtp.ErrNotConfigured}
	}
	if candidate.Email == "" {
		return &apperrors.NotificationError{TaskID: taskID, Err: errors.New("у кандидата не указана почта")}
	}
	msg, err := buildMsg(*candidate, *task)
	if err != nil {
		return &apperrors.NotificationError{TaskID: taskID, Err: errors.Wrap(err, "ошибка заполнения шаблона письма")}
	}
	err = i.sender.SendEMail(i.from, candidate.Email, msg, task.Title)
	if err != nil {
		return &apperrors.NotificationError{TaskID: taskID, Err: err}
	}
	logger.Info("письмо по задаче отправлено кандидату")
	return nil
}

func buildMsg(candidate dbmodels.Candidate, task dbmodels.TaskInstance) (string, error) {
	buf := new(bytes.Buffer)
	err := bodyTemplate.Execute(buf, messageData{Candidate: candidate, Task: task})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
