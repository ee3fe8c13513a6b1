package generationlog

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gptclient "techscreen-backend/lib/gpt/client"
	generationlogstore "techscreen-backend/lib/generation-log/store"
	"techscreen-backend/lib/smtp"
	"techscreen-backend/models"
	dbmodels "techscreen-backend/models/db"
)

// Provider records one audit row per generation attempt.
type Provider interface {
	Start(operation models.OperationType, reqID, userID string) (logID string, err error)
	Succeed(logID string, tokensUsed int, model string) error
	Fail(logID string, kind models.ErrorKind, cause error) error
	ListByReqID(reqID string) ([]dbmodels.GenerationLog, error)
	FailStale(olderThan time.Duration) (int64, error)
}

func NewHandler(DB *gorm.DB, mailer smtp.Provider, notifyEmail string) Provider {
	return &impl{
		store:       generationlogstore.NewInstance(DB),
		mailer:      mailer,
		notifyEmail: notifyEmail,
	}
}

type impl struct {
	store       generationlogstore.Provider
	mailer      smtp.Provider
	notifyEmail string
}

func (i impl) Start(operation models.OperationType, reqID, userID string) (string, error) {
	logID, err := i.store.Create(dbmodels.GenerationLog{
		OperationType: operation,
		ReqID:         reqID,
		UserID:        userID,
		Status:        models.GenerationInProgress,
		StartedAt:     time.Now(),
	})
	if err != nil {
		log.
			WithField("req_id", reqID).
			WithField("operation", operation).
			WithError(err).
			Error("failed to create generation log")
		return "", errors.Wrap(err, "create generation log")
	}
	return logID, nil
}

func (i impl) Succeed(logID string, tokensUsed int, model string) error {
	err := i.store.Complete(logID, map[string]interface{}{
		"status":       models.GenerationSuccess,
		"tokens_used":  tokensUsed,
		"model":        model,
		"completed_at": time.Now(),
	})
	if err != nil {
		log.
			WithField("log_id", logID).
			WithError(err).
			Error("failed to complete generation log")
		return errors.Wrap(err, "complete generation log")
	}
	return nil
}

func (i impl) Fail(logID string, kind models.ErrorKind, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	err := i.store.Complete(logID, map[string]interface{}{
		"status":        models.GenerationFailed,
		"error_kind":    kind,
		"error_message": message,
		"completed_at":  time.Now(),
	})
	if err != nil {
		log.
			WithField("log_id", logID).
			WithError(err).
			Error("failed to complete generation log")
		return errors.Wrap(err, "complete generation log")
	}
	i.notify(logID, kind, message)
	return nil
}

func (i impl) ListByReqID(reqID string) ([]dbmodels.GenerationLog, error) {
	list, err := i.store.ListByReqID(reqID)
	if err != nil {
		log.
			WithField("req_id", reqID).
			WithError(err).
			Error("failed to list generation logs")
		return nil, err
	}
	return list, nil
}

// abandonedMessage is recorded on attempts that never reported an outcome,
// typically because the process stopped mid-call.
const abandonedMessage = "generation abandoned: no outcome recorded"

func (i impl) FailStale(olderThan time.Duration) (int64, error) {
	now := time.Now()
	count, err := i.store.FailStale(now.Add(-olderThan), map[string]interface{}{
		"status":        models.GenerationFailed,
		"error_kind":    models.ErrKindCanceled,
		"error_message": abandonedMessage,
		"completed_at":  now,
	})
	if err != nil {
		log.WithError(err).Error("failed to close stale generation logs")
		return 0, errors.Wrap(err, "close stale generation logs")
	}
	if count > 0 {
		log.WithField("count", count).Warn("closed stale generation logs")
	}
	return count, nil
}

func (i impl) notify(logID string, kind models.ErrorKind, message string) {
	if i.mailer == nil || i.notifyEmail == "" || !i.mailer.IsConfigured() {
		return
	}
	rec, err := i.store.GetByID(logID)
	if err != nil || rec == nil {
		log.WithField("log_id", logID).WithError(err).Warn("generation log not found for notification")
		return
	}
	subject := fmt.Sprintf("%s failed", rec.OperationType)
	body := fmt.Sprintf("Request: %s\nUser: %s\nKind: %s\nStarted: %s\n\n%s",
		rec.ReqID, rec.UserID, kind, rec.StartedAt.Format(time.RFC3339), message)
	if err := i.mailer.SendEMail(i.notifyEmail, subject, body); err != nil {
		log.WithField("log_id", logID).WithError(err).Warn("failed to send generation failure notification")
	}
}

// ProviderErrorKind maps a failed provider call to its error kind.
func ProviderErrorKind(err error) models.ErrorKind {
	var exhausted *gptclient.ErrExhausted
	var attempt *gptclient.ErrAttempt
	var providerErr *gptclient.ErrProvider
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.ErrKindCanceled
	case errors.As(err, &exhausted):
		return models.ErrKindProviderExhausted
	case errors.As(err, &attempt) && errors.As(err, &providerErr) && providerErr.Retryable:
		return models.ErrKindProviderExhausted
	}
	return models.ErrKindProviderFatal
}
