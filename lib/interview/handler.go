package interview

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	generationlog "techscreen-backend/lib/generation-log"
	gptclient "techscreen-backend/lib/gpt/client"
	interviewparser "techscreen-backend/lib/interview/parser"
	interviewstore "techscreen-backend/lib/interview/store"
	interviewvalidator "techscreen-backend/lib/interview/validator"
	jobdescriptionstore "techscreen-backend/lib/jd-enhancement/store"
	"techscreen-backend/lib/prompt"
	questioncache "techscreen-backend/lib/question-cache"
	"techscreen-backend/models"
	interviewapimodels "techscreen-backend/models/api/interview"
	dbmodels "techscreen-backend/models/db"
)

type Provider interface {
	Generate(ctx context.Context, userID string, req interviewapimodels.GenerateInterviewRequest) (*interviewapimodels.GenerateInterviewResponse, error)
	GetByID(id string) (*interviewapimodels.InterviewView, error)
	ListByReqID(reqID string) ([]interviewapimodels.InterviewView, error)
	SetCriterionChecked(interviewID string, questionNumber, criterionIndex int, checked bool) (*interviewapimodels.QuestionView, error)
	UpdateStatus(id string, status models.InterviewStatus) error
	Delete(id string) error
}

type Config struct {
	MaxTokens    int
	Temperature  float64
	Rules        interviewvalidator.Rules
	CacheEnabled bool
}

func NewHandler(DB *gorm.DB, provider gptclient.Provider, tracker generationlog.Provider, cache questioncache.Provider, cfg Config) Provider {
	cfg.Rules = cfg.Rules.WithDefaults()
	return &impl{
		interviewStore: interviewstore.NewInstance(DB),
		jdStore:        jobdescriptionstore.NewInstance(DB),
		provider:       provider,
		tracker:        tracker,
		cache:          cache,
		validator:      interviewvalidator.NewValidator(cfg.Rules),
		cfg:            cfg,
	}
}

type impl struct {
	interviewStore interviewstore.Provider
	jdStore        jobdescriptionstore.Provider
	provider       gptclient.Provider
	tracker        generationlog.Provider
	cache          questioncache.Provider
	validator      interviewvalidator.Provider
	cfg            Config
}

func (i impl) Generate(ctx context.Context, userID string, req interviewapimodels.GenerateInterviewRequest) (*interviewapimodels.GenerateInterviewResponse, error) {
	logger := log.
		WithField("req_id", req.ReqID).
		WithField("job_description_id", req.JobDescriptionID).
		WithField("user_id", userID)

	logID, err := i.tracker.Start(models.OperationInterviewGeneration, req.ReqID, userID)
	if err != nil {
		return nil, i.newError(req.ReqID, "", models.ErrKindStorage, err)
	}
	fail := func(kind models.ErrorKind, cause error) error {
		_ = i.tracker.Fail(logID, kind, cause)
		return i.newError(req.ReqID, logID, kind, cause)
	}

	jd, err := i.jdStore.GetByID(req.JobDescriptionID)
	if err != nil {
		logger.WithError(err).Error("failed to get job description")
		return nil, fail(models.ErrKindStorage, err)
	}
	if jd == nil {
		return nil, fail(models.ErrKindNotFound, errors.Wrapf(models.ErrNotFound, "job description %s", req.JobDescriptionID))
	}

	interviewName := req.InterviewName
	if interviewName == "" {
		interviewName = fmt.Sprintf("%s - Interview", jd.BasicTitle)
	}

	shape := prompt.Shape{
		Questions:   i.cfg.Rules.Questions,
		CriteriaMin: i.cfg.Rules.CriteriaMin,
		CriteriaMax: i.cfg.Rules.CriteriaMax,
	}
	system, user := prompt.BuildInterviewPromptWithShape(jd.GenerationSource(), shape)
	result, err := i.provider.Generate(ctx, gptclient.Request{
		System:      system,
		User:        user,
		MaxTokens:   i.cfg.MaxTokens,
		Temperature: i.cfg.Temperature,
	})
	if err != nil {
		logger.WithError(err).Error("interview generation call failed")
		return nil, fail(generationlog.ProviderErrorKind(err), err)
	}

	parsed := interviewparser.Parse(result.Text)
	if err = i.validator.Validate(parsed); err != nil {
		logger.
			WithField("parsed_questions", len(parsed)).
			WithError(err).
			Error("generated interview has invalid structure")
		return nil, fail(models.ErrKindValidationFailed, err)
	}

	rec := &dbmodels.Interview{
		JobDescriptionID: jd.ID,
		ReqID:            req.ReqID,
		InterviewName:    interviewName,
		CreatedByUserID:  userID,
		Status:           models.InterviewDraft,
		Questions:        make([]dbmodels.InterviewQuestion, 0, len(parsed)),
	}
	for _, q := range parsed {
		criteria := make(dbmodels.Criteria, 0, len(q.Criteria))
		for _, c := range q.Criteria {
			criteria = append(criteria, dbmodels.Criterion{Criterion: c.Name, Description: c.Description})
		}
		rec.Questions = append(rec.Questions, dbmodels.InterviewQuestion{
			QuestionNumber: q.Number,
			QuestionText:   q.Text,
			QuestionType:   models.QuestionTechnical,
			ExpectedAnswer: q.ExpectedAnswer,
			Criteria:       criteria,
		})
	}
	if err = i.interviewStore.CreateWithQuestions(rec); err != nil {
		logger.WithError(err).Error("failed to save interview")
		return nil, fail(models.ErrKindStorage, err)
	}

	cached := 0
	if i.cfg.CacheEnabled && i.cache != nil && req.CacheRequested() {
		cached = i.offerToCache(jd.BasicLevel, rec.Questions)
	}

	tokens := result.Usage.TotalTokens
	_ = i.tracker.Succeed(logID, tokens, result.Model)
	logger.
		WithField("interview_id", rec.ID).
		WithField("tokens_used", tokens).
		WithField("cached_questions", cached).
		Info("interview generated")

	return &interviewapimodels.GenerateInterviewResponse{
		InterviewID:     rec.ID,
		ReqID:           req.ReqID,
		InterviewName:   rec.InterviewName,
		Interview:       interviewapimodels.InterviewConvert(*rec),
		TokensUsed:      tokens,
		CachedQuestions: cached,
		LogID:           logID,
		CreatedAt:       rec.CreatedAt,
	}, nil
}

// offerToCache writes questions with a subject area through to the question cache.
func (i impl) offerToCache(skillLevel string, questions []dbmodels.InterviewQuestion) int {
	offered := 0
	for _, q := range questions {
		if q.ExpectedAnswer == "" {
			continue
		}
		offered++
		_, err := i.cache.Put(questioncache.Entry{
			Topic:        q.ExpectedAnswer,
			SkillLevel:   skillLevel,
			QuestionText: q.QuestionText,
			Criteria:     q.Criteria,
		})
		if err != nil {
			log.
				WithField("topic", q.ExpectedAnswer).
				WithError(err).
				Warn("failed to cache question")
		}
	}
	return offered
}

func (i impl) GetByID(id string) (*interviewapimodels.InterviewView, error) {
	rec, err := i.interviewStore.GetByID(id)
	if err != nil {
		log.WithField("interview_id", id).WithError(err).Error("failed to get interview")
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	view := interviewapimodels.InterviewConvert(*rec)
	return &view, nil
}

func (i impl) ListByReqID(reqID string) ([]interviewapimodels.InterviewView, error) {
	list, err := i.interviewStore.ListByReqID(reqID)
	if err != nil {
		log.WithField("req_id", reqID).WithError(err).Error("failed to list interviews")
		return nil, err
	}
	result := make([]interviewapimodels.InterviewView, 0, len(list))
	for _, rec := range list {
		result = append(result, interviewapimodels.InterviewConvert(rec))
	}
	return result, nil
}

// SetCriterionChecked toggles the reviewer flag of a criterion. criterionIndex is 1-based.
func (i impl) SetCriterionChecked(interviewID string, questionNumber, criterionIndex int, checked bool) (*interviewapimodels.QuestionView, error) {
	logger := log.
		WithField("interview_id", interviewID).
		WithField("question_number", questionNumber).
		WithField("criterion", criterionIndex)

	question, err := i.interviewStore.GetQuestion(interviewID, questionNumber)
	if err != nil {
		logger.WithError(err).Error("failed to get interview question")
		return nil, err
	}
	if question == nil || criterionIndex < 1 || criterionIndex > len(question.Criteria) {
		return nil, models.ErrNotFound
	}
	question.Criteria[criterionIndex-1].IsChecked = checked
	if err = i.interviewStore.UpdateCriteria(question.ID, question.Criteria); err != nil {
		logger.WithError(err).Error("failed to update criteria")
		return nil, err
	}
	view := interviewapimodels.QuestionConvert(*question)
	return &view, nil
}

func (i impl) UpdateStatus(id string, status models.InterviewStatus) error {
	if !status.IsValid() {
		return errors.Errorf("invalid interview status: %q", status)
	}
	err := i.interviewStore.UpdateStatus(id, status)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		log.WithField("interview_id", id).WithError(err).Error("failed to update interview status")
	}
	return err
}

func (i impl) Delete(id string) error {
	err := i.interviewStore.Delete(id)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		log.WithField("interview_id", id).WithError(err).Error("failed to delete interview")
	}
	return err
}

func (i impl) newError(reqID, logID string, kind models.ErrorKind, err error) error {
	return &models.GenerationError{
		Operation: models.OperationInterviewGeneration,
		ReqID:     reqID,
		LogID:     logID,
		Kind:      kind,
		Err:       err,
	}
}
