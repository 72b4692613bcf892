package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	dbmodels "hr-pipeline-backend/models/db"
)

func AutoMigrateDB() error {
	return Migrate(DB)
}

// Migrate создает структуры движка подбора в переданном подключении
func Migrate(conn *gorm.DB) error {
	log.Info("Запуск миграций")
	if err := conn.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := conn.AutoMigrate(&dbmodels.StageHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры StageHistory")
	}
	if err := conn.AutoMigrate(&dbmodels.TaskInstance{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TaskInstance")
	}
	if err := conn.AutoMigrate(&dbmodels.EventSession{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EventSession")
	}
	if err := conn.AutoMigrate(&dbmodels.Participation{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Participation")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
