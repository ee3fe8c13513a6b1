package interviewapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	dbmodels "techscreen-backend/models/db"
)

type EnhanceJDRequest struct {
	ReqID            string `json:"req_id"`
	BasicTitle       string `json:"basic_title"`
	BasicDescription string `json:"basic_description"`
	BasicDepartment  string `json:"basic_department"`
	BasicLevel       string `json:"basic_level"`
	// WORK inputs, optional
	WorkOutput       string `json:"work_output"`
	WorkRole         string `json:"work_role"`
	WorkKnowledge    string `json:"work_knowledge"`
	WorkCompetencies string `json:"work_competencies"`
}

func (r EnhanceJDRequest) Validate() error {
	return requireFields(map[string]string{
		"req_id":            r.ReqID,
		"basic_title":       r.BasicTitle,
		"basic_description": r.BasicDescription,
	}, "req_id", "basic_title", "basic_description")
}

// BasicJDView echoes the basic fields the enhancement was generated from.
type BasicJDView struct {
	Title       string `json:"title"`
	Department  string `json:"department"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

type WorkInputsView struct {
	WorkOutput       string `json:"work_output"`
	WorkRole         string `json:"work_role"`
	WorkKnowledge    string `json:"work_knowledge"`
	WorkCompetencies string `json:"work_competencies"`
}

type EnhanceJDResponse struct {
	JobDescriptionID    string         `json:"job_description_id"`
	ReqID               string         `json:"req_id"`
	BasicJD             BasicJDView    `json:"basic_jd"`
	EnhancedTitle       string         `json:"enhanced_title"`
	EnhancedDescription string         `json:"enhanced_description"`
	WorkInputs          WorkInputsView `json:"work_inputs"`
	TokensUsed          int            `json:"tokens_used"`
	LogID               string         `json:"log_id"`
	CreatedAt           time.Time      `json:"created_at"`
	EnhancedAt          time.Time      `json:"enhanced_at"`
}

func (r EnhanceJDRequest) BasicJD() BasicJDView {
	return BasicJDView{
		Title:       r.BasicTitle,
		Department:  r.BasicDepartment,
		Level:       r.BasicLevel,
		Description: r.BasicDescription,
	}
}

func (r EnhanceJDRequest) WorkInputs() WorkInputsView {
	return WorkInputsView{
		WorkOutput:       r.WorkOutput,
		WorkRole:         r.WorkRole,
		WorkKnowledge:    r.WorkKnowledge,
		WorkCompetencies: r.WorkCompetencies,
	}
}

type JobDescriptionView struct {
	ID                  string     `json:"id"`
	ReqID               string     `json:"req_id"`
	BasicTitle          string     `json:"basic_title"`
	BasicDescription    string     `json:"basic_description"`
	BasicDepartment     string     `json:"basic_department"`
	BasicLevel          string     `json:"basic_level"`
	WorkOutput          string     `json:"work_output"`
	WorkRole            string     `json:"work_role"`
	WorkKnowledge       string     `json:"work_knowledge"`
	WorkCompetencies    string     `json:"work_competencies"`
	EnhancedTitle       string     `json:"enhanced_title"`
	EnhancedDescription string     `json:"enhanced_description"`
	EnhancedAt          *time.Time `json:"enhanced_at"`
	CreatedByUserID     string     `json:"created_by_user_id"`
	CreatedAt           time.Time  `json:"created_at"`
}

func JobDescriptionConvert(rec dbmodels.JobDescription) JobDescriptionView {
	return JobDescriptionView{
		ID:                  rec.ID,
		ReqID:               rec.ReqID,
		BasicTitle:          rec.BasicTitle,
		BasicDescription:    rec.BasicDescription,
		BasicDepartment:     rec.BasicDepartment,
		BasicLevel:          rec.BasicLevel,
		WorkOutput:          rec.WorkOutput,
		WorkRole:            rec.WorkRole,
		WorkKnowledge:       rec.WorkKnowledge,
		WorkCompetencies:    rec.WorkCompetencies,
		EnhancedTitle:       rec.EnhancedTitle,
		EnhancedDescription: rec.EnhancedDescription,
		EnhancedAt:          rec.EnhancedAt,
		CreatedByUserID:     rec.CreatedByUserID,
		CreatedAt:           rec.CreatedAt,
	}
}

func requireFields(values map[string]string, order ...string) error {
	for _, field := range order {
		if strings.TrimSpace(values[field]) == "" {
			return errors.Errorf("missing required field: %s", field)
		}
	}
	return nil
}
