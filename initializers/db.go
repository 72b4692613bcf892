package initializers

import (
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
)

func InitDBConnection() {
	conf := config.Conf.Database
	err := db.Connect(db.ConnectParams{
		Host:         conf.Host,
		Port:         conf.Port,
		Database:     conf.Name,
		User:         conf.User,
		Password:     conf.Password,
		MaxOpenConns: conf.MaxOpenConns,
		MaxIdleConns: conf.MaxIdleConns,
		DebugMode:    *conf.DebugMode,
		Migrate:      *conf.MigrateOnStart,
	})
	if err != nil {
		panic(err.Error())
	}
}
