package filestorage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	filesdbstorage "techscreen-backend/lib/file-storage/storage"
	interviewapimodels "techscreen-backend/models/api/interview"
	dbmodels "techscreen-backend/models/db"
)

const defaultPresignExpire = time.Hour

// ErrNotConfigured is returned when no object store is available.
var ErrNotConfigured = errors.New("object storage is not configured")

type Provider interface {
	Archive(ctx context.Context, userID, interviewID string, format dbmodels.ArchiveFormat, data []byte) (*interviewapimodels.ArchiveView, error)
	ListByInterview(interviewID string) ([]dbmodels.InterviewArchive, error)
}

type Config struct {
	BucketName    string
	PresignExpire time.Duration
}

func NewHandler(DB *gorm.DB, objects ObjectStore, cfg Config) Provider {
	if cfg.PresignExpire <= 0 {
		cfg.PresignExpire = defaultPresignExpire
	}
	return &impl{
		store:   filesdbstorage.NewInstance(DB),
		objects: objects,
		cfg:     cfg,
	}
}

type impl struct {
	store   filesdbstorage.Provider
	objects ObjectStore
	cfg     Config
}

func ObjectKey(interviewID string, format dbmodels.ArchiveFormat) string {
	return fmt.Sprintf("interviews/%s/%s.%s", interviewID, uuid.NewString(), format)
}

func (i impl) Archive(ctx context.Context, userID, interviewID string, format dbmodels.ArchiveFormat, data []byte) (*interviewapimodels.ArchiveView, error) {
	if i.objects == nil {
		return nil, ErrNotConfigured
	}
	if !format.IsValid() {
		return nil, errors.Errorf("unsupported archive format: %q", format)
	}
	logger := log.WithFields(log.Fields{
		"interview_id": interviewID,
		"format":       format,
	})
	if err := i.objects.EnsureBucket(ctx, i.cfg.BucketName); err != nil {
		logger.WithError(err).Error("failed to ensure archive bucket")
		return nil, errors.Wrap(err, "ensure bucket")
	}
	key := ObjectKey(interviewID, format)
	if err := i.objects.PutObject(ctx, i.cfg.BucketName, key, data, format.ContentType()); err != nil {
		logger.WithError(err).Error("failed to upload archive")
		return nil, errors.Wrap(err, "upload archive")
	}
	rec := dbmodels.InterviewArchive{
		InterviewID: interviewID,
		UserID:      userID,
		Format:      format,
		ObjectKey:   key,
		Bucket:      i.cfg.BucketName,
		Size:        int64(len(data)),
		ContentType: format.ContentType(),
	}
	if err := i.store.Create(&rec); err != nil {
		logger.WithError(err).Error("failed to save archive record")
		return nil, errors.Wrap(err, "save archive record")
	}
	url, err := i.objects.PresignedURL(ctx, i.cfg.BucketName, key, i.cfg.PresignExpire)
	if err != nil {
		logger.WithError(err).Error("failed to presign archive url")
		return nil, errors.Wrap(err, "presign archive url")
	}
	return &interviewapimodels.ArchiveView{
		ObjectKey: key,
		URL:       url,
	}, nil
}

func (i impl) ListByInterview(interviewID string) ([]dbmodels.InterviewArchive, error) {
	return i.store.ListByInterview(interviewID)
}
