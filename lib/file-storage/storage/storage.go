package filesdbstorage

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "techscreen-backend/models/db"
)

type Provider interface {
	Create(rec *dbmodels.InterviewArchive) error
	ListByInterview(interviewID string) ([]dbmodels.InterviewArchive, error)
}

type impl struct {
	db *gorm.DB
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{db: DB}
}

func (i impl) Create(rec *dbmodels.InterviewArchive) error {
	return i.db.Create(rec).Error
}

func (i impl) ListByInterview(interviewID string) (list []dbmodels.InterviewArchive, err error) {
	err = i.db.
		Model(&dbmodels.InterviewArchive{}).
		Where("interview_id = ?", interviewID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}
