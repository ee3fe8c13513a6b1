package initializers

import (
	"techscreen-backend/config"
	"techscreen-backend/lib/smtp"
)

func InitSmtp(conf *config.Configuration) smtp.Provider {
	return smtp.NewClient(smtp.Config{
		User:       conf.Smtp.User,
		Password:   conf.Smtp.Password,
		Host:       conf.Smtp.Host,
		Port:       conf.Smtp.Port,
		TLSEnabled: boolValue(conf.Smtp.TLSEnabled),
	})
}
