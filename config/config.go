package config

import (
	"time"

	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"hr-pipeline" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MaxOpenConns   int    `default:"20" env:"DB_MAX_OPEN_CONNS"`
		MaxIdleConns   int    `default:"5" env:"DB_MAX_IDLE_CONNS"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		Sender     string `default:"recruiting@localhost" env:"SMTP_SENDER"`
	}
	Pipeline struct {
		CatalogFile     string `default:"" env:"PIPELINE_CATALOG_FILE"` // пустое значение - встроенный каталог этапов
		LockWaitSec     int    `default:"5" env:"PIPELINE_LOCK_WAIT_SEC"`
		EnforceCapacity *bool  `default:"true" env:"PIPELINE_ENFORCE_CAPACITY"`
	}
	Metrics struct {
		Enabled            *bool  `default:"true" env:"METRICS_ENABLED"`
		Path               string `default:"/metrics" env:"METRICS_PATH"`
		RefreshIntervalSec int    `default:"60" env:"METRICS_REFRESH_INTERVAL_SEC"` // 0 - метрики воронки не пересчитываются
	}
}

func (c Configuration) TransitionLockWait() time.Duration {
	if c.Pipeline.LockWaitSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Pipeline.LockWaitSec) * time.Second
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
