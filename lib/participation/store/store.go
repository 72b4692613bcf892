package participationstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	// Upsert последний ответ перезаписывает предыдущий
	Upsert(rec dbmodels.Participation) (*dbmodels.Participation, error)
	// CreateIfAbsent создает запись, если по паре кандидат/мероприятие ее еще нет
	CreateIfAbsent(rec dbmodels.Participation) error
	Get(candidateID, sessionID string) (*dbmodels.Participation, error)
	ListBySession(sessionID string) ([]dbmodels.Participation, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Upsert(rec dbmodels.Participation) (*dbmodels.Participation, error) {
	rec.UpdatedAt = time.Now()
	err := i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&rec).
		Error
	if err != nil {
		return nil, err
	}
	return i.Get(rec.CandidateID, rec.SessionID)
}

func (i impl) CreateIfAbsent(rec dbmodels.Participation) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "session_id"}},
			DoNothing: true,
		}).
		Create(&rec).
		Error
}

func (i impl) Get(candidateID, sessionID string) (*dbmodels.Participation, error) {
	rec := dbmodels.Participation{}
	err := i.db.
		Model(&dbmodels.Participation{}).
		Where("candidate_id = ?", candidateID).
		Where("session_id = ?", sessionID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListBySession(sessionID string) ([]dbmodels.Participation, error) {
	list := []dbmodels.Participation{}
	err := i.db.
		Where("session_id = ?", sessionID).
		Order("updated_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
