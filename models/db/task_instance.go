package dbmodels

import (
	"time"

	"hr-pipeline-backend/models"
)

// TaskInstance задача по кандидату, созданная из шаблона этапа
type TaskInstance struct {
	BaseModel
	CandidateID   string              `gorm:"type:varchar(36);index"`
	HistoryID     string              `gorm:"type:varchar(36);index"`
	Stage         string              `gorm:"type:varchar(255)"`
	TemplateID    string              `gorm:"type:varchar(255)"`
	Title         string              `gorm:"type:varchar(255)"`
	Kind          models.TaskKind     `gorm:"type:varchar(50)"`
	Schedule      models.TaskSchedule `gorm:"type:varchar(50)"`
	SequenceIndex *int                // порядковый номер среди задач-касаний этапа
	Priority      int
	IsRequired    bool
	Status        models.TaskStatus `gorm:"type:varchar(50)"`
	DueDate       *time.Time
	Notes         string
}
