package models

import "github.com/pkg/errors"

// OutcomeCategory - категория исхода для отчетов воронки
type OutcomeCategory string

const (
	OutcomePassed    OutcomeCategory = "passed"
	OutcomeFailed    OutcomeCategory = "failed"
	OutcomePending   OutcomeCategory = "pending"
	OutcomeDeclined  OutcomeCategory = "declined"
	OutcomeCancelled OutcomeCategory = "cancelled"
)

const (
	StageFinalSelection = "final-selection"
	StageOfferInterview = "offer-interview"
)

// этапы, на которых "completed" считается успешным прохождением
var passedOnCompletionStages = map[string]struct{}{
	StageFinalSelection: {},
	StageOfferInterview: {},
}

var ErrUnknownHistoryStatus = errors.New("неизвестный статус этапа")

// ClassifyOutcome единственная таблица соответствия статуса этапа и категории исхода.
// Неизвестный статус - ошибка, категория по умолчанию не подставляется.
func ClassifyOutcome(stage string, status HistoryStatus) (OutcomeCategory, error) {
	switch status {
	case HistoryStatusPassed, HistoryStatusParticipated, HistoryStatusOffered, HistoryStatusAccepted:
		return OutcomePassed, nil
	case HistoryStatusFailed, HistoryStatusNoShow, HistoryStatusUnconfirmed, HistoryStatusRejectedFinal, HistoryStatusRejected:
		return OutcomeFailed, nil
	case HistoryStatusPending, HistoryStatusScheduled, HistoryStatusInProgress:
		return OutcomePending, nil
	case HistoryStatusWithdrawn:
		return OutcomeDeclined, nil
	case HistoryStatusCancelled:
		return OutcomeCancelled, nil
	case HistoryStatusCompleted:
		if _, ok := passedOnCompletionStages[stage]; ok {
			return OutcomePassed, nil
		}
		return OutcomePending, nil
	}
	return "", errors.Wrapf(ErrUnknownHistoryStatus, "status=%q", status)
}
