package interviewapimodels

import (
	"time"

	"techscreen-backend/models"
	dbmodels "techscreen-backend/models/db"
)

type FullWorkflowRequest struct {
	EnhanceJDRequest
	InterviewName string `json:"interview_name"`
	UseCache      *bool  `json:"use_cache"`
}

func (r FullWorkflowRequest) Validate() error {
	return r.EnhanceJDRequest.Validate()
}

type FullWorkflowResponse struct {
	JobDescriptionID string        `json:"job_description_id"`
	InterviewID      string        `json:"interview_id,omitempty"`
	ReqID            string        `json:"req_id"`
	Interview        InterviewView `json:"interview"`
	TotalTokensUsed  int           `json:"total_tokens_used"`
	CreatedAt        time.Time     `json:"created_at"`
}

// PartialWorkflowResult is returned when enhancement succeeded and generation did not.
type PartialWorkflowResult struct {
	JobDescriptionID string `json:"job_description_id"`
	ReqID            string `json:"req_id"`
	Error            string `json:"error"`
	ErrorKind        string `json:"error_kind"`
	TokensUsed       int    `json:"tokens_used"`
}

type GenerationLogView struct {
	ID            string                  `json:"id"`
	OperationType models.OperationType    `json:"operation_type"`
	ReqID         string                  `json:"req_id"`
	UserID        string                  `json:"user_id"`
	Status        models.GenerationStatus `json:"status"`
	ErrorKind     models.ErrorKind        `json:"error_kind,omitempty"`
	ErrorMessage  string                  `json:"error_message,omitempty"`
	TokensUsed    int                     `json:"tokens_used"`
	Model         string                  `json:"model,omitempty"`
	StartedAt     time.Time               `json:"started_at"`
	CompletedAt   *time.Time              `json:"completed_at"`
}

func GenerationLogConvert(rec dbmodels.GenerationLog) GenerationLogView {
	return GenerationLogView{
		ID:            rec.ID,
		OperationType: rec.OperationType,
		ReqID:         rec.ReqID,
		UserID:        rec.UserID,
		Status:        rec.Status,
		ErrorKind:     rec.ErrorKind,
		ErrorMessage:  rec.ErrorMessage,
		TokensUsed:    rec.TokensUsed,
		Model:         rec.Model,
		StartedAt:     rec.StartedAt,
		CompletedAt:   rec.CompletedAt,
	}
}

type CachedQuestionView struct {
	CacheKey     string          `json:"cache_key"`
	Topic        string          `json:"topic"`
	SkillLevel   string          `json:"skill_level"`
	QuestionText string          `json:"question_text"`
	Criteria     []CriterionView `json:"criteria"`
	UsageCount   int             `json:"usage_count"`
	LastUsedAt   time.Time       `json:"last_used_at"`
}

func CachedQuestionConvert(rec dbmodels.QuestionCache) CachedQuestionView {
	view := CachedQuestionView{
		CacheKey:     rec.CacheKey,
		Topic:        rec.Topic,
		SkillLevel:   rec.SkillLevel,
		QuestionText: rec.QuestionText,
		Criteria:     make([]CriterionView, 0, len(rec.Criteria)),
		UsageCount:   rec.UsageCount,
		LastUsedAt:   rec.LastUsedAt,
	}
	for _, c := range rec.Criteria {
		view.Criteria = append(view.Criteria, CriterionView{
			Criterion:   c.Criterion,
			Description: c.Description,
			IsChecked:   c.IsChecked,
		})
	}
	return view
}
