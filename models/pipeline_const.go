package models

// HistoryStatus - исход кандидата на этапе подбора
type HistoryStatus string

const (
	HistoryStatusInProgress    HistoryStatus = "in-progress" // текущий этап кандидата
	HistoryStatusCompleted     HistoryStatus = "completed"   // этап закрыт переводом на следующий
	HistoryStatusPassed        HistoryStatus = "passed"
	HistoryStatusParticipated  HistoryStatus = "participated"
	HistoryStatusOffered       HistoryStatus = "offered"
	HistoryStatusAccepted      HistoryStatus = "accepted"
	HistoryStatusFailed        HistoryStatus = "failed"
	HistoryStatusNoShow        HistoryStatus = "no-show"
	HistoryStatusUnconfirmed   HistoryStatus = "unconfirmed"
	HistoryStatusRejectedFinal HistoryStatus = "rejected-final"
	HistoryStatusRejected      HistoryStatus = "rejected"
	HistoryStatusPending       HistoryStatus = "pending"
	HistoryStatusScheduled     HistoryStatus = "scheduled"
	HistoryStatusWithdrawn     HistoryStatus = "withdrawn"
	HistoryStatusCancelled     HistoryStatus = "cancelled"
)

// AllHistoryStatuses закрытый список статусов, каждый обязан иметь категорию в ClassifyOutcome
var AllHistoryStatuses = []HistoryStatus{
	HistoryStatusInProgress,
	HistoryStatusCompleted,
	HistoryStatusPassed,
	HistoryStatusParticipated,
	HistoryStatusOffered,
	HistoryStatusAccepted,
	HistoryStatusFailed,
	HistoryStatusNoShow,
	HistoryStatusUnconfirmed,
	HistoryStatusRejectedFinal,
	HistoryStatusRejected,
	HistoryStatusPending,
	HistoryStatusScheduled,
	HistoryStatusWithdrawn,
	HistoryStatusCancelled,
}

func (s HistoryStatus) IsValid() bool {
	for _, status := range AllHistoryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type CandidateSource string

const (
	CandidateSourceCareerSite CandidateSource = "career-site"
	CandidateSourceJobBoard   CandidateSource = "job-board"
	CandidateSourceReferral   CandidateSource = "referral"
	CandidateSourceEvent      CandidateSource = "event"
	CandidateSourceAgency     CandidateSource = "agency"
	CandidateSourceOther      CandidateSource = "other"
)

func (s CandidateSource) IsValid() bool {
	switch s {
	case CandidateSourceCareerSite, CandidateSourceJobBoard, CandidateSourceReferral,
		CandidateSourceEvent, CandidateSourceAgency, CandidateSourceOther:
		return true
	}
	return false
}

// TaskKind - тип задачи по кандидату
type TaskKind string

const (
	TaskKindGeneral    TaskKind = "general"
	TaskKindEmail      TaskKind = "email"
	TaskKindDocument   TaskKind = "document"
	TaskKindInterview  TaskKind = "interview"
	TaskKindEvaluation TaskKind = "evaluation"
)

func (k TaskKind) IsValid() bool {
	switch k {
	case TaskKindGeneral, TaskKindEmail, TaskKindDocument, TaskKindInterview, TaskKindEvaluation:
		return true
	}
	return false
}

// TaskSchedule - правило расчета срока задачи
type TaskSchedule string

const (
	TaskScheduleGeneral          TaskSchedule = "general"           // срок = дата + due_offset_days
	TaskScheduleApproachSequence TaskSchedule = "approach-sequence" // срок = дата + порядковый номер среди задач-касаний
)

func (s TaskSchedule) IsValid() bool {
	return s == TaskScheduleGeneral || s == TaskScheduleApproachSequence
}

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusSkipped    TaskStatus = "skipped"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted, TaskStatusSkipped:
		return true
	}
	return false
}

// ParticipationStatus - решение кандидата об участии в мероприятии этапа
type ParticipationStatus string

const (
	ParticipationStatusParticipate    ParticipationStatus = "participate"
	ParticipationStatusNotParticipate ParticipationStatus = "not_participate"
	ParticipationStatusPending        ParticipationStatus = "pending"
	ParticipationStatusNotSet         ParticipationStatus = "not_set" // только для чтения, не сохраняется
)

func (s ParticipationStatus) IsValid() bool {
	switch s {
	case ParticipationStatusParticipate, ParticipationStatusNotParticipate, ParticipationStatusPending:
		return true
	}
	return false
}
