package initializers

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"techscreen-backend/config"
	apiv1 "techscreen-backend/controllers/v1"
	"techscreen-backend/fiberlog"
	xlsexport "techscreen-backend/lib/export/xls"
	filestorage "techscreen-backend/lib/file-storage"
	generationlog "techscreen-backend/lib/generation-log"
	"techscreen-backend/lib/interview"
	interviewvalidator "techscreen-backend/lib/interview/validator"
	jdenhancement "techscreen-backend/lib/jd-enhancement"
	questioncache "techscreen-backend/lib/question-cache"
	"techscreen-backend/lib/smtp"
	"techscreen-backend/lib/workflow"
)

// Services holds everything the HTTP server needs.
type Services struct {
	DB           *gorm.DB
	Mailer       smtp.Provider
	LoggerConfig *fiberlog.Config
	InterviewAPI apiv1.InterviewAPI
}

func InitAllServices(ctx context.Context, conf *config.Configuration) (*Services, error) {
	if conf.Auth.JWTSecret == "" {
		return nil, errors.New("auth: JWT_SECRET is required")
	}
	loggerConfig := InitLogger(conf.App.LogLevel)

	conn, err := InitDBConnection(conf)
	if err != nil {
		return nil, err
	}
	provider, err := InitGptProvider(ctx, conf)
	if err != nil {
		return nil, err
	}
	mailer := InitSmtp(conf)
	objects := InitS3(ctx, conf)

	tracker := generationlog.NewHandler(conn, mailer, conf.Smtp.NotifyEmail)
	cache := questioncache.NewHandler(conn)
	enhancer := jdenhancement.NewHandler(conn, provider, tracker, jdenhancement.Config{
		MaxTokens:   conf.LLM.MaxTokens,
		Temperature: conf.Generation.EnhanceTemperature,
	})
	generator := interview.NewHandler(conn, provider, tracker, cache, interview.Config{
		MaxTokens:   conf.LLM.MaxTokens,
		Temperature: conf.Generation.InterviewTemperature,
		Rules: interviewvalidator.Rules{
			Questions:   conf.Generation.QuestionCount,
			CriteriaMin: conf.Generation.CriteriaMin,
			CriteriaMax: conf.Generation.CriteriaMax,
		},
		CacheEnabled: boolValue(conf.Cache.Enabled),
	})

	var archive filestorage.Provider = filestorage.NewHandler(conn, objects, filestorage.Config{
		BucketName:    conf.S3.BucketName,
		PresignExpire: time.Duration(conf.S3.PresignExpireSec) * time.Second,
	})

	return &Services{
		DB:           conn,
		Mailer:       mailer,
		LoggerConfig: loggerConfig,
		InterviewAPI: apiv1.InterviewAPI{
			JWTSecret:  conf.Auth.JWTSecret,
			DB:         conn,
			Enhancer:   enhancer,
			Interviews: generator,
			Workflow:   workflow.NewHandler(enhancer, generator),
			Logs:       tracker,
			Cache:      cache,
			Xls:        xlsexport.NewHandler(),
			Archive:    archive,
		},
	}, nil
}
