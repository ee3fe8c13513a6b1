package models

type OperationType string

const (
	OperationJDEnhancement       OperationType = "jd_enhancement"
	OperationInterviewGeneration OperationType = "interview_generation"
)

type GenerationStatus string

const (
	GenerationInProgress GenerationStatus = "in_progress"
	GenerationSuccess    GenerationStatus = "success"
	GenerationFailed     GenerationStatus = "failed"
)

// InterviewStatus is informational only, transitions are not enforced.
type InterviewStatus string

const (
	InterviewDraft     InterviewStatus = "draft"
	InterviewPublished InterviewStatus = "published"
	InterviewArchived  InterviewStatus = "archived"
)

func (s InterviewStatus) IsValid() bool {
	switch s {
	case InterviewDraft, InterviewPublished, InterviewArchived:
		return true
	}
	return false
}

type QuestionType string

const (
	QuestionTechnical  QuestionType = "technical"
	QuestionBehavioral QuestionType = "behavioral"
)
