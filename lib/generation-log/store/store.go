package generationlogstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"techscreen-backend/models"
	dbmodels "techscreen-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.GenerationLog) (string, error)
	Complete(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.GenerationLog, error)
	ListByReqID(reqID string) ([]dbmodels.GenerationLog, error)
	FailStale(startedBefore time.Time, updMap map[string]interface{}) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.GenerationLog) (string, error) {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Complete applies the terminal update. Rows already out of in_progress are left as is.
func (i impl) Complete(id string, updMap map[string]interface{}) error {
	tx := i.db.
		Model(&dbmodels.GenerationLog{}).
		Where("id = ?", id).
		Where("status = ?", models.GenerationInProgress).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.Errorf("generation log %s is not in progress", id)
	}
	return nil
}

func (i impl) GetByID(id string) (rec *dbmodels.GenerationLog, err error) {
	err = i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) ListByReqID(reqID string) (list []dbmodels.GenerationLog, err error) {
	err = i.db.
		Model(&dbmodels.GenerationLog{}).
		Where("req_id = ?", reqID).
		Order("started_at asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FailStale closes rows left in_progress since before startedBefore.
func (i impl) FailStale(startedBefore time.Time, updMap map[string]interface{}) (int64, error) {
	tx := i.db.
		Model(&dbmodels.GenerationLog{}).
		Where("status = ?", models.GenerationInProgress).
		Where("started_at < ?", startedBefore).
		Updates(updMap)
	return tx.RowsAffected, tx.Error
}
