package stagehistorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.StageHistory) (*dbmodels.StageHistory, error)
	GetByID(candidateID, id string) (*dbmodels.StageHistory, error)
	// GetInProgress текущая запись кандидата со статусом in-progress
	GetInProgress(candidateID string) (*dbmodels.StageHistory, error)
	// GetLast последняя по времени запись кандидата
	GetLast(candidateID string) (*dbmodels.StageHistory, error)
	UpdateStatus(candidateID, id string, status models.HistoryStatus) error
	ListByCandidate(candidateID string) ([]dbmodels.StageHistory, error)
	ListAll() ([]dbmodels.StageHistory, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StageHistory) (*dbmodels.StageHistory, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByID(candidateID, id string) (*dbmodels.StageHistory, error) {
	rec := dbmodels.StageHistory{}
	err := i.db.
		Model(&dbmodels.StageHistory{}).
		Where("id = ?", id).
		Where("candidate_id = ?", candidateID).
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

func (i impl) GetInProgress(candidateID string) (*dbmodels.StageHistory, error) {
	rec := dbmodels.StageHistory{}
	err := i.db.
		Model(&dbmodels.StageHistory{}).
		Where("candidate_id = ?", candidateID).
		Where("status = ?", models.HistoryStatusInProgress).
		Order("created_at desc").
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

func (i impl) GetLast(candidateID string) (*dbmodels.StageHistory, error) {
	rec := dbmodels.StageHistory{}
	err := i.db.
		Model(&dbmodels.StageHistory{}).
		Where("candidate_id = ?", candidateID).
		Order("created_at desc").
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

func (i impl) UpdateStatus(candidateID, id string, status models.HistoryStatus) error {
	tx := i.db.
		Model(&dbmodels.StageHistory{}).
		Where("id = ?", id).
		Where("candidate_id = ?", candidateID).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись истории не найдена")
	}
	return nil
}

func (i impl) ListByCandidate(candidateID string) ([]dbmodels.StageHistory, error) {
	list := []dbmodels.StageHistory{}
	err := i.db.
		Where("candidate_id = ?", candidateID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListAll() ([]dbmodels.StageHistory, error) {
	list := []dbmodels.StageHistory{}
	err := i.db.
		Order("candidate_id").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
