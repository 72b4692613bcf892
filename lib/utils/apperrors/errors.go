// Package apperrors содержит типизированные ошибки движка подбора.
// Контроллеры по ним выбирают код ответа, обработчики - уровень логирования.
package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrCapacityExceeded     = errors.New("на мероприятии нет свободных мест")
	ErrConcurrentTransition = errors.New("кандидат уже переводится на другой этап, повторите операцию позже")
)

// ValidationError некорректные входные данные, операция не выполнялась
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...interface{}) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s не найден (id=%s)", e.Entity, e.ID)
}

func NewNotFoundError(entity, id string) error {
	return NotFoundError{Entity: entity, ID: id}
}

// TransitionError ошибка записи при переводе кандидата, перевод не применен целиком
type TransitionError struct {
	CandidateID string
	TargetStage string
	Step        string
	Err         error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("не удалось перевести кандидата %s на этап %q (шаг %s), этап кандидата не изменен: %v",
		e.CandidateID, e.TargetStage, e.Step, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// NotificationError ошибка отправки уведомления, вызывающему не возвращается
type NotificationError struct {
	TaskID string
	Err    error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("ошибка отправки уведомления по задаче %s: %v", e.TaskID, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsTransition(err error) bool {
	var target *TransitionError
	return errors.As(err, &target)
}
