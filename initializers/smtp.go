package initializers

import (
	log "github.com/sirupsen/logrus"

	"hr-pipeline-backend/config"
	"hr-pipeline-backend/lib/smtp"
)

func InitSmtp() {
	conf := config.Conf.Smtp
	err := smtp.Connect(conf.User, conf.Password, conf.Host, conf.Port, *conf.TLSEnabled)
	if err != nil {
		panic(err.Error())
	}
	if !smtp.Instance.IsConfigured() {
		log.Warn("smtp не настроен, письма по задачам кандидатов отправляться не будут")
	}
}
