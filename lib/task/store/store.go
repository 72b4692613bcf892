package taskstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	CreateBatch(list []dbmodels.TaskInstance) ([]dbmodels.TaskInstance, error)
	GetByID(id string) (*dbmodels.TaskInstance, error)
	ListByCandidate(candidateID, stage string) ([]dbmodels.TaskInstance, error)
	Update(candidateID, id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateBatch(list []dbmodels.TaskInstance) ([]dbmodels.TaskInstance, error) {
	if len(list) == 0 {
		return list, nil
	}
	err := i.db.
		Create(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetByID(id string) (*dbmodels.TaskInstance, error) {
	rec := dbmodels.TaskInstance{}
	err := i.db.
		Model(&dbmodels.TaskInstance{}).
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

func (i impl) ListByCandidate(candidateID, stage string) ([]dbmodels.TaskInstance, error) {
	list := []dbmodels.TaskInstance{}
	tx := i.db.
		Where("candidate_id = ?", candidateID)
	if stage != "" {
		tx = tx.Where("stage = ?", stage)
	}
	err := tx.
		Order("created_at").
		Order("priority").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(candidateID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.TaskInstance{}).
		Where("id = ?", id).
		Where("candidate_id = ?", candidateID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("задача не найдена")
	}
	return nil
}
