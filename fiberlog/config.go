package fiberlog

import "github.com/sirupsen/logrus"

// Config настройки лога запросов api
type Config struct {
	// Logger при nil пишется в стандартный логгер logrus
	Logger *logrus.Logger
	// Tags поля записи лога, см. Tag*
	Tags []string
}

var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}
