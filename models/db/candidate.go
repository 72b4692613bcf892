package dbmodels

import (
	"fmt"
	"strings"

	"hr-pipeline-backend/models"
)

type Candidate struct {
	BaseModel
	FirstName    string                 `gorm:"type:varchar(255)"`
	LastName     string                 `gorm:"type:varchar(255)"`
	MiddleName   string                 `gorm:"type:varchar(255)"`
	Email        string                 `gorm:"type:varchar(255)"`
	Phone        string                 `gorm:"type:varchar(255)"`
	Source       models.CandidateSource `gorm:"type:varchar(100);index"` // канал привлечения, после создания не меняется
	Cohort       string                 `gorm:"type:varchar(100);index"` // поток набора
	CurrentStage string                 `gorm:"type:varchar(255);index"`
	Comment      string
}

func (c Candidate) GetFIO() string {
	return strings.TrimSpace(fmt.Sprintf("%v %v %v", c.LastName, c.FirstName, c.MiddleName))
}
