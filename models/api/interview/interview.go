package interviewapimodels

import (
	"time"

	"github.com/pkg/errors"
	"techscreen-backend/models"
	dbmodels "techscreen-backend/models/db"
)

type GenerateInterviewRequest struct {
	ReqID            string `json:"req_id"`
	JobDescriptionID string `json:"job_description_id"`
	InterviewName    string `json:"interview_name"`
	UseCache         *bool  `json:"use_cache"`
}

func (r GenerateInterviewRequest) Validate() error {
	return requireFields(map[string]string{
		"req_id":             r.ReqID,
		"job_description_id": r.JobDescriptionID,
	}, "req_id", "job_description_id")
}

// CacheRequested defaults to true when use_cache is omitted.
func (r GenerateInterviewRequest) CacheRequested() bool {
	return r.UseCache == nil || *r.UseCache
}

type GenerateInterviewResponse struct {
	InterviewID     string        `json:"interview_id"`
	ReqID           string        `json:"req_id"`
	InterviewName   string        `json:"interview_name"`
	Interview       InterviewView `json:"interview"`
	TokensUsed      int           `json:"tokens_used"`
	CachedQuestions int           `json:"cached_questions"`
	LogID           string        `json:"log_id"`
	CreatedAt       time.Time     `json:"created_at"`
}

type CriterionView struct {
	Criterion   string `json:"criterion"`
	Description string `json:"description"`
	IsChecked   bool   `json:"is_checked"`
}

type QuestionView struct {
	ID             string              `json:"id"`
	QuestionNumber int                 `json:"question_number"`
	QuestionText   string              `json:"question_text"`
	QuestionType   models.QuestionType `json:"question_type"`
	ExpectedAnswer string              `json:"expected_answer"`
	Criteria       []CriterionView     `json:"criteria"`
}

type InterviewView struct {
	ID               string                 `json:"id"`
	JobDescriptionID string                 `json:"job_description_id"`
	ReqID            string                 `json:"req_id"`
	InterviewName    string                 `json:"interview_name"`
	Status           models.InterviewStatus `json:"status"`
	Version          int                    `json:"version"`
	CreatedByUserID  string                 `json:"created_by_user_id"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	Questions        []QuestionView         `json:"questions"`
}

func InterviewConvert(rec dbmodels.Interview) InterviewView {
	view := InterviewView{
		ID:               rec.ID,
		JobDescriptionID: rec.JobDescriptionID,
		ReqID:            rec.ReqID,
		InterviewName:    rec.InterviewName,
		Status:           rec.Status,
		Version:          rec.Version,
		CreatedByUserID:  rec.CreatedByUserID,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
		Questions:        make([]QuestionView, 0, len(rec.Questions)),
	}
	for _, q := range rec.Questions {
		view.Questions = append(view.Questions, QuestionConvert(q))
	}
	return view
}

func QuestionConvert(rec dbmodels.InterviewQuestion) QuestionView {
	view := QuestionView{
		ID:             rec.ID,
		QuestionNumber: rec.QuestionNumber,
		QuestionText:   rec.QuestionText,
		QuestionType:   rec.QuestionType,
		ExpectedAnswer: rec.ExpectedAnswer,
		Criteria:       make([]CriterionView, 0, len(rec.Criteria)),
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

type UpdateStatusRequest struct {
	Status models.InterviewStatus `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	if !r.Status.IsValid() {
		return errors.Errorf("invalid interview status: %q", r.Status)
	}
	return nil
}

type SetCriterionRequest struct {
	IsChecked bool `json:"is_checked"`
}

func (r SetCriterionRequest) Validate() error {
	return nil
}

type ArchiveView struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
}
