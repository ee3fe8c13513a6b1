package jobdescriptionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "techscreen-backend/models/db"
)

type Provider interface {
	Create(rec *dbmodels.JobDescription) error
	GetByID(id string) (*dbmodels.JobDescription, error)
	GetByReqID(reqID string) (*dbmodels.JobDescription, error)
	Update(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec *dbmodels.JobDescription) error {
	return i.db.
		Create(rec).
		Error
}

func (i impl) GetByID(id string) (rec *dbmodels.JobDescription, err error) {
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

func (i impl) GetByReqID(reqID string) (rec *dbmodels.JobDescription, err error) {
	err = i.db.
		Where("req_id = ?", reqID).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.JobDescription{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}
