package dbmodels

import "time"

// JobDescription keeps the original JD untouched next to its enhanced version.
type JobDescription struct {
	BaseModel
	ReqID string `gorm:"type:varchar(255);not null;uniqueIndex" json:"req_id"`

	BasicTitle       string `gorm:"type:varchar(255);not null" json:"basic_title"`
	BasicDescription string `gorm:"type:text;not null" json:"basic_description"`
	BasicDepartment  string `gorm:"type:varchar(255)" json:"basic_department"`
	BasicLevel       string `gorm:"type:varchar(50)" json:"basic_level"`

	// WORK methodology inputs
	WorkOutput       string `gorm:"type:text" json:"work_output"`
	WorkRole         string `gorm:"type:text" json:"work_role"`
	WorkKnowledge    string `gorm:"type:text" json:"work_knowledge"`
	WorkCompetencies string `gorm:"type:text" json:"work_competencies"`

	EnhancedTitle       string     `gorm:"type:varchar(255)" json:"enhanced_title"`
	EnhancedDescription string     `gorm:"type:text" json:"enhanced_description"`
	EnhancedAt          *time.Time `json:"enhanced_at"`

	CreatedByUserID string `gorm:"type:varchar(255);not null;index" json:"created_by_user_id"`

	// LastInterviewVersion only grows, so deleted interviews never free a version.
	LastInterviewVersion int `gorm:"not null;default:0" json:"-"`

	Interviews []Interview `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// GenerationSource returns the text interview questions are generated from.
func (j JobDescription) GenerationSource() string {
	if j.EnhancedDescription != "" {
		return j.EnhancedDescription
	}
	return j.BasicDescription
}
