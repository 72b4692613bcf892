package sessionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.EventSession) (id string, err error)
	GetByID(id string) (*dbmodels.EventSession, error)
	// GetByIDForUpdate блокирует строку мероприятия до конца транзакции
	GetByIDForUpdate(id string) (*dbmodels.EventSession, error)
	List(stage string) ([]dbmodels.EventSession, error)
	// FindByStage мероприятие этапа для потока, при отсутствии - общее (без потока)
	FindByStage(stage, cohort string) (*dbmodels.EventSession, error)
	// IncParticipants занимает место, false - мест нет (при enforce)
	IncParticipants(id string, enforce bool) (bool, error)
	DecParticipants(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EventSession) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.EventSession, error) {
	rec := dbmodels.EventSession{}
	err := i.db.
		Model(&dbmodels.EventSession{}).
		Where("id = ?", id).
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

func (i impl) GetByIDForUpdate(id string) (*dbmodels.EventSession, error) {
	rec := dbmodels.EventSession{}
	err := i.db.
		Model(&dbmodels.EventSession{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
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

func (i impl) List(stage string) ([]dbmodels.EventSession, error) {
	list := []dbmodels.EventSession{}
	tx := i.db.Model(&dbmodels.EventSession{})
	if stage != "" {
		tx = tx.Where("stage = ?", stage)
	}
	err := tx.
		Order("start_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) FindByStage(stage, cohort string) (*dbmodels.EventSession, error) {
	cohorts := []string{""}
	if cohort != "" {
		cohorts = []string{cohort, ""}
	}
	for _, c := range cohorts {
		rec := dbmodels.EventSession{}
		err := i.db.
			Model(&dbmodels.EventSession{}).
			Where("stage = ?", stage).
			Where("cohort = ?", c).
			Order("start_at").
			First(&rec).
			Error
		if err == nil {
			return &rec, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

func (i impl) IncParticipants(id string, enforce bool) (bool, error) {
	tx := i.db.
		Model(&dbmodels.EventSession{}).
		Where("id = ?", id)
	if enforce {
		tx = tx.Where("max_participants IS NULL OR current_participants < max_participants")
	}
	tx = tx.Update("current_participants", gorm.Expr("current_participants + 1"))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (i impl) DecParticipants(id string) error {
	return i.db.
		Model(&dbmodels.EventSession{}).
		Where("id = ?", id).
		Where("current_participants > 0").
		Update("current_participants", gorm.Expr("current_participants - 1")).
		Error
}
