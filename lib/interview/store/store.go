package interviewstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"techscreen-backend/models"
	dbmodels "techscreen-backend/models/db"
)

type Provider interface {
	// CreateWithQuestions stores the interview and its questions in one
	// transaction with the next version number of the job description.
	// Versions are never reused, even after Delete.
	CreateWithQuestions(rec *dbmodels.Interview) error
	GetByID(id string) (*dbmodels.Interview, error)
	ListByReqID(reqID string) ([]dbmodels.Interview, error)
	GetQuestion(interviewID string, number int) (*dbmodels.InterviewQuestion, error)
	UpdateCriteria(questionID string, criteria dbmodels.Criteria) error
	UpdateStatus(id string, status models.InterviewStatus) error
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateWithQuestions(rec *dbmodels.Interview) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&dbmodels.JobDescription{}).
			Where("id = ?", rec.JobDescriptionID).
			Update("last_interview_version", gorm.Expr("last_interview_version + 1"))
		if res.Error != nil {
			return errors.Wrap(res.Error, "bump interview version")
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		var counter int
		err := tx.
			Model(&dbmodels.JobDescription{}).
			Where("id = ?", rec.JobDescriptionID).
			Select("last_interview_version").
			Scan(&counter).
			Error
		if err != nil {
			return errors.Wrap(err, "get interview version")
		}
		// rows written before the counter existed
		var maxVersion int
		err = tx.
			Model(&dbmodels.Interview{}).
			Where("job_description_id = ?", rec.JobDescriptionID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).
			Error
		if err != nil {
			return errors.Wrap(err, "get interview version")
		}
		rec.Version = counter
		if maxVersion >= counter {
			rec.Version = maxVersion + 1
			err = tx.
				Model(&dbmodels.JobDescription{}).
				Where("id = ?", rec.JobDescriptionID).
				Update("last_interview_version", rec.Version).
				Error
			if err != nil {
				return errors.Wrap(err, "bump interview version")
			}
		}
		if err = tx.Create(rec).Error; err != nil {
			return errors.Wrap(err, "create interview")
		}
		return nil
	})
}

func (i impl) GetByID(id string) (rec *dbmodels.Interview, err error) {
	err = i.db.
		Preload("Questions", orderByNumber).
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

func (i impl) ListByReqID(reqID string) (list []dbmodels.Interview, err error) {
	err = i.db.
		Preload("Questions", orderByNumber).
		Where("req_id = ?", reqID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetQuestion(interviewID string, number int) (rec *dbmodels.InterviewQuestion, err error) {
	err = i.db.
		Where("interview_id = ?", interviewID).
		Where("question_number = ?", number).
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

func (i impl) UpdateCriteria(questionID string, criteria dbmodels.Criteria) error {
	return i.db.
		Model(&dbmodels.InterviewQuestion{}).
		Where("id = ?", questionID).
		Update("criteria", criteria).
		Error
}

func (i impl) UpdateStatus(id string, status models.InterviewStatus) error {
	tx := i.db.
		Model(&dbmodels.Interview{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (i impl) Delete(id string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("interview_id = ?", id).
			Delete(&dbmodels.InterviewQuestion{}).
			Error
		if err != nil {
			return errors.Wrap(err, "delete interview questions")
		}
		res := tx.
			Where("id = ?", id).
			Delete(&dbmodels.Interview{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete interview")
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

func orderByNumber(db *gorm.DB) *gorm.DB {
	return db.Order("question_number asc")
}
