package jdenhancement

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	generationlog "techscreen-backend/lib/generation-log"
	gptclient "techscreen-backend/lib/gpt/client"
	jobdescriptionstore "techscreen-backend/lib/jd-enhancement/store"
	"techscreen-backend/lib/prompt"
	"techscreen-backend/lib/utils/lock"
	"techscreen-backend/models"
	interviewapimodels "techscreen-backend/models/api/interview"
	dbmodels "techscreen-backend/models/db"
)

type Provider interface {
	Enhance(ctx context.Context, userID string, req interviewapimodels.EnhanceJDRequest) (*interviewapimodels.EnhanceJDResponse, error)
	GetByReqID(reqID string) (*interviewapimodels.JobDescriptionView, error)
}

type Config struct {
	MaxTokens   int
	Temperature float64
}

func NewHandler(DB *gorm.DB, provider gptclient.Provider, tracker generationlog.Provider, cfg Config) Provider {
	return &impl{
		jdStore:  jobdescriptionstore.NewInstance(DB),
		provider: provider,
		tracker:  tracker,
		cfg:      cfg,
	}
}

type impl struct {
	jdStore  jobdescriptionstore.Provider
	provider gptclient.Provider
	tracker  generationlog.Provider
	cfg      Config
}

func (i impl) Enhance(ctx context.Context, userID string, req interviewapimodels.EnhanceJDRequest) (*interviewapimodels.EnhanceJDResponse, error) {
	logger := log.
		WithField("req_id", req.ReqID).
		WithField("user_id", userID)

	logID, err := i.tracker.Start(models.OperationJDEnhancement, req.ReqID, userID)
	if err != nil {
		return nil, i.newError(req.ReqID, "", models.ErrKindStorage, err)
	}
	fail := func(kind models.ErrorKind, cause error) error {
		_ = i.tracker.Fail(logID, kind, cause)
		return i.newError(req.ReqID, logID, kind, cause)
	}

	jd, err := i.resolveJD(ctx, userID, req)
	if err != nil {
		logger.WithError(err).Error("failed to resolve job description")
		if ctx.Err() != nil {
			return nil, fail(models.ErrKindCanceled, err)
		}
		return nil, fail(models.ErrKindStorage, err)
	}

	system, user := prompt.BuildEnhancementPrompt(prompt.JDFields{
		Title:            req.BasicTitle,
		Description:      req.BasicDescription,
		Department:       req.BasicDepartment,
		Level:            req.BasicLevel,
		WorkOutput:       req.WorkOutput,
		WorkRole:         req.WorkRole,
		WorkKnowledge:    req.WorkKnowledge,
		WorkCompetencies: req.WorkCompetencies,
	})
	result, err := i.provider.Generate(ctx, gptclient.Request{
		System:      system,
		User:        user,
		MaxTokens:   i.cfg.MaxTokens,
		Temperature: i.cfg.Temperature,
	})
	if err != nil {
		logger.WithError(err).Error("job description enhancement call failed")
		return nil, fail(generationlog.ProviderErrorKind(err), err)
	}

	enhancedAt := time.Now()
	enhancedDescription := strings.TrimSpace(result.Text)
	updMap := map[string]interface{}{
		"enhanced_title":       req.BasicTitle,
		"enhanced_description": enhancedDescription,
		"enhanced_at":          enhancedAt,
	}
	for column, value := range map[string]string{
		"work_output":       req.WorkOutput,
		"work_role":         req.WorkRole,
		"work_knowledge":    req.WorkKnowledge,
		"work_competencies": req.WorkCompetencies,
	} {
		if value != "" {
			updMap[column] = value
		}
	}
	if err = i.jdStore.Update(jd.ID, updMap); err != nil {
		logger.WithError(err).Error("failed to save enhanced job description")
		return nil, fail(models.ErrKindStorage, errors.Wrap(err, "save enhanced job description"))
	}

	tokens := result.Usage.TotalTokens
	_ = i.tracker.Succeed(logID, tokens, result.Model)
	logger.
		WithField("job_description_id", jd.ID).
		WithField("tokens_used", tokens).
		Info("job description enhanced")

	return &interviewapimodels.EnhanceJDResponse{
		JobDescriptionID:    jd.ID,
		ReqID:               req.ReqID,
		BasicJD:             req.BasicJD(),
		EnhancedTitle:       req.BasicTitle,
		EnhancedDescription: enhancedDescription,
		WorkInputs:          req.WorkInputs(),
		TokensUsed:          tokens,
		LogID:               logID,
		CreatedAt:           jd.CreatedAt,
		EnhancedAt:          enhancedAt,
	}, nil
}

const resolveLockWait = 10 * time.Second

// resolveJD reuses the job description of req.ReqID or creates the basic one.
// The basic fields of an existing record are never overwritten.
func (i impl) resolveJD(ctx context.Context, userID string, req interviewapimodels.EnhanceJDRequest) (rec *dbmodels.JobDescription, err error) {
	locked, lockErr := lock.WithDelay(ctx, "jd:"+req.ReqID, resolveLockWait, func() error {
		rec, err = i.findOrCreateJD(userID, req)
		return err
	})
	if lockErr != nil {
		return nil, lockErr
	}
	if !locked {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Errorf("timed out waiting for job description %s", req.ReqID)
	}
	return rec, nil
}

func (i impl) findOrCreateJD(userID string, req interviewapimodels.EnhanceJDRequest) (*dbmodels.JobDescription, error) {
	existing, err := i.jdStore.GetByReqID(req.ReqID)
	if err != nil {
		return nil, errors.Wrap(err, "find job description")
	}
	if existing != nil {
		log.WithField("req_id", req.ReqID).Warn("job description already exists, enhancing existing record")
		return existing, nil
	}
	rec := &dbmodels.JobDescription{
		ReqID:            req.ReqID,
		BasicTitle:       req.BasicTitle,
		BasicDescription: req.BasicDescription,
		BasicDepartment:  req.BasicDepartment,
		BasicLevel:       req.BasicLevel,
		WorkOutput:       req.WorkOutput,
		WorkRole:         req.WorkRole,
		WorkKnowledge:    req.WorkKnowledge,
		WorkCompetencies: req.WorkCompetencies,
		CreatedByUserID:  userID,
	}
	if err = i.jdStore.Create(rec); err != nil {
		// a concurrent request may have created the same req_id
		existing, findErr := i.jdStore.GetByReqID(req.ReqID)
		if findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, errors.Wrap(err, "create job description")
	}
	return rec, nil
}

func (i impl) GetByReqID(reqID string) (*interviewapimodels.JobDescriptionView, error) {
	rec, err := i.jdStore.GetByReqID(reqID)
	if err != nil {
		log.WithField("req_id", reqID).WithError(err).Error("failed to get job description")
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	view := interviewapimodels.JobDescriptionConvert(*rec)
	return &view, nil
}

func (i impl) newError(reqID, logID string, kind models.ErrorKind, err error) error {
	return &models.GenerationError{
		Operation: models.OperationJDEnhancement,
		ReqID:     reqID,
		LogID:     logID,
		Kind:      kind,
		Err:       err,
	}
}
