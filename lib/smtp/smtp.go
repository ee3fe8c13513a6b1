package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	SendEMail(to, subject, message string) error
	IsConfigured() bool
}

type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	TLSEnabled bool
}

func NewClient(cfg Config) Provider {
	return &impl{
		user:       cfg.User,
		password:   cfg.Password,
		host:       cfg.Host,
		port:       cfg.Port,
		tlsEnabled: cfg.TLSEnabled,
	}
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) IsConfigured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.WithField("recipient", to)
	if !i.IsConfigured() {
		logger.Warn("smtp client is not configured, message skipped")
		return nil
	}
	if to == "" {
		return errors.New("recipient address is empty")
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	body := strings.NewReader(buildMessage(i.user, to, subject, message))

	addr := i.host + ":" + i.port
	if i.tlsEnabled {
		err = smtp.SendMailTLS(addr, auth, i.user, []string{to}, body)
	} else {
		err = smtp.SendMail(addr, auth, i.user, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("failed to send e-mail")
		return errors.Wrap(err, "send e-mail")
	}
	logger.Info("e-mail sent")
	return nil
}

func buildMessage(from, to, subject, message string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: TechScreen - %s\r\nMIME-version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		from, to, subject, message)
}
