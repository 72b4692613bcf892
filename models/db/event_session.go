package dbmodels

import "time"

// EventSession мероприятие, привязанное к этапу (и потоку набора)
type EventSession struct {
	BaseModel
	Stage               string `gorm:"type:varchar(255);index:idx_session_stage_cohort"`
	Cohort              string `gorm:"type:varchar(100);index:idx_session_stage_cohort"` // пусто - для всех потоков
	Title               string `gorm:"type:varchar(255)"`
	StartAt             time.Time
	EndAt               time.Time
	Venue               string
	MaxParticipants     *int
	CurrentParticipants int
}

func (s EventSession) IsFull() bool {
	return s.MaxParticipants != nil && s.CurrentParticipants >= *s.MaxParticipants
}
