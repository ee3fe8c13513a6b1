package workflow

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"techscreen-backend/lib/interview"
	jdenhancement "techscreen-backend/lib/jd-enhancement"
	interviewapimodels "techscreen-backend/models/api/interview"
)

const interviewFailedMessage = "JD was enhanced successfully, but interview generation failed"

// InterviewFailedError is returned by Full when enhancement succeeded and generation did not.
type InterviewFailedError struct {
	JobDescriptionID string
	ReqID            string
	TokensUsed       int
	Err              error
}

func (e *InterviewFailedError) Error() string {
	return fmt.Sprintf("%s: %v", interviewFailedMessage, e.Err)
}

func (e *InterviewFailedError) Unwrap() error { return e.Err }

func (e *InterviewFailedError) Message() string { return interviewFailedMessage }

type Provider interface {
	JDOnly(ctx context.Context, userID string, req interviewapimodels.EnhanceJDRequest) (*interviewapimodels.EnhanceJDResponse, error)
	Full(ctx context.Context, userID string, req interviewapimodels.FullWorkflowRequest) (*interviewapimodels.FullWorkflowResponse, error)
}

func NewHandler(enhancer jdenhancement.Provider, generator interview.Provider) Provider {
	return &impl{
		enhancer:  enhancer,
		generator: generator,
	}
}

type impl struct {
	enhancer  jdenhancement.Provider
	generator interview.Provider
}

func (i impl) JDOnly(ctx context.Context, userID string, req interviewapimodels.EnhanceJDRequest) (*interviewapimodels.EnhanceJDResponse, error) {
	return i.enhancer.Enhance(ctx, userID, req)
}

func (i impl) Full(ctx context.Context, userID string, req interviewapimodels.FullWorkflowRequest) (*interviewapimodels.FullWorkflowResponse, error) {
	logger := log.
		WithField("req_id", req.ReqID).
		WithField("user_id", userID)
	logger.Info("starting full workflow")

	enhanced, err := i.enhancer.Enhance(ctx, userID, req.EnhanceJDRequest)
	if err != nil {
		return nil, err
	}

	generated, err := i.generator.Generate(ctx, userID, interviewapimodels.GenerateInterviewRequest{
		ReqID:            req.ReqID,
		JobDescriptionID: enhanced.JobDescriptionID,
		InterviewName:    req.InterviewName,
		UseCache:         req.UseCache,
	})
	if err != nil {
		logger.WithError(err).Warn(interviewFailedMessage)
		return nil, &InterviewFailedError{
			JobDescriptionID: enhanced.JobDescriptionID,
			ReqID:            req.ReqID,
			TokensUsed:       enhanced.TokensUsed,
			Err:              err,
		}
	}

	return &interviewapimodels.FullWorkflowResponse{
		JobDescriptionID: enhanced.JobDescriptionID,
		InterviewID:      generated.InterviewID,
		ReqID:            req.ReqID,
		Interview:        generated.Interview,
		TotalTokensUsed:  enhanced.TokensUsed + generated.TokensUsed,
		CreatedAt:        time.Now(),
	}, nil
}
