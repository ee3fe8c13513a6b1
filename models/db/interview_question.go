package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
	"techscreen-backend/models"
)

type InterviewQuestion struct {
	BaseModel
	InterviewID    string              `gorm:"type:varchar(36);not null;uniqueIndex:idx_interview_question_number" json:"interview_id"`
	QuestionNumber int                 `gorm:"not null;uniqueIndex:idx_interview_question_number" json:"question_number"`
	QuestionText   string              `gorm:"type:text;not null" json:"question_text"`
	QuestionType   models.QuestionType `gorm:"type:varchar(50);default:technical" json:"question_type"`
	ExpectedAnswer string              `gorm:"type:text" json:"expected_answer"`
	Criteria       Criteria            `gorm:"type:text;not null" json:"criteria"`
}

// Criterion is one graded evaluation point. IsChecked is set by a human reviewer only.
type Criterion struct {
	Criterion   string `json:"criterion"`
	Description string `json:"description"`
	IsChecked   bool   `json:"is_checked"`
}

type Criteria []Criterion

func (c Criteria) Value() (driver.Value, error) {
	if c == nil {
		c = Criteria{}
	}
	valueString, err := json.Marshal(c)
	return string(valueString), err
}

func (c *Criteria) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*c = Criteria{}
		return nil
	default:
		return errors.Errorf("unsupported criteria column type %T", value)
	}
	return json.Unmarshal(data, c)
}
