package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "techscreen-backend/models/db"
)

func AutoMigrateDB(DB *gorm.DB) error {
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.JobDescription{}); err != nil {
		return errors.Wrap(err, "failed to migrate JobDescription")
	}
	if err := DB.AutoMigrate(&dbmodels.Interview{}); err != nil {
		return errors.Wrap(err, "failed to migrate Interview")
	}
	if err := DB.AutoMigrate(&dbmodels.InterviewQuestion{}); err != nil {
		return errors.Wrap(err, "failed to migrate InterviewQuestion")
	}
	if err := DB.AutoMigrate(&dbmodels.QuestionCache{}); err != nil {
		return errors.Wrap(err, "failed to migrate QuestionCache")
	}
	if err := DB.AutoMigrate(&dbmodels.GenerationLog{}); err != nil {
		return errors.Wrap(err, "failed to migrate GenerationLog")
	}
	if err := DB.AutoMigrate(&dbmodels.InterviewArchive{}); err != nil {
		return errors.Wrap(err, "failed to migrate InterviewArchive")
	}
	log.Info("migrations finished")
	return nil
}
