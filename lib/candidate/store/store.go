package candidatestore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (id string, err error)
	GetByID(id string) (*dbmodels.Candidate, error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateStage условная запись: этап меняется, только если текущий равен expectedStage
	UpdateStage(id, expectedStage, newStage string) (updated bool, err error)
	ListCount(filter candidateapimodels.CandidateFilter) (count int64, err error)
	List(filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, err error)
	SourceMap() (map[string]models.CandidateSource, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) UpdateStage(id, expectedStage, newStage string) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Where("current_stage = ?", expectedStage).
		Update("current_stage", newStage)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (i impl) ListCount(filter candidateapimodels.CandidateFilter) (count int64, err error) {
	tx := i.db.Model(&dbmodels.Candidate{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	return count, err
}

func (i impl) List(filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	tx := i.db.Model(&dbmodels.Candidate{})
	i.addFilter(tx, filter)
	_, limit := filter.GetPage()
	err = tx.
		Order("created_at desc").
		Limit(limit).
		Offset(filter.GetOffset()).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// SourceMap соответствие ид кандидата -> источник для отчетов
func (i impl) SourceMap() (map[string]models.CandidateSource, error) {
	type row struct {
		ID     string
		Source models.CandidateSource
	}
	rows := []row{}
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Select("id, source").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]models.CandidateSource, len(rows))
	for _, r := range rows {
		result[r.ID] = r.Source
	}
	return result, nil
}

func (i impl) addFilter(tx *gorm.DB, filter candidateapimodels.CandidateFilter) {
	if filter.Stage != "" {
		tx.Where("current_stage = ?", filter.Stage)
	}
	if filter.Source != "" {
		tx.Where("source = ?", filter.Source)
	}
	if filter.Cohort != "" {
		tx.Where("cohort = ?", filter.Cohort)
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(last_name || ' ' || first_name || ' ' || middle_name) like ? or phone like ? or LOWER(email) like ?", searchValue, searchValue, searchValue)
	}
}
