package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"techscreen-backend/config"
	filestorage "techscreen-backend/lib/file-storage"
	s3client "techscreen-backend/s3"
)

// InitS3 returns nil when object storage is not configured, archiving is then disabled.
func InitS3(ctx context.Context, conf *config.Configuration) filestorage.ObjectStore {
	cfg := s3client.Config{
		Endpoint:        conf.S3.Endpoint,
		AccessKeyID:     conf.S3.AccessKeyID,
		SecretAccessKey: conf.S3.SecretAccessKey,
		UseSSL:          boolValue(conf.S3.UseSSL),
	}
	if !cfg.IsConfigured() {
		log.Warn("S3 endpoint is not configured, interview archiving disabled")
		return nil
	}
	minioClient, err := s3client.NewClient(cfg)
	if err != nil {
		log.WithError(err).Error("failed to init S3 client")
		return nil
	}
	if _, err = minioClient.ListBuckets(ctx); err != nil {
		log.WithError(err).Error("S3 connection check failed")
	}
	log.Info("S3 client initialized")
	return filestorage.NewMinioStore(minioClient)
}
