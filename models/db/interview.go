package dbmodels

import (
	"techscreen-backend/models"
)

type Interview struct {
	BaseModel
	JobDescriptionID string                 `gorm:"type:varchar(36);not null;uniqueIndex:idx_interview_jd_version" json:"job_description_id"`
	ReqID            string                 `gorm:"type:varchar(255);not null;index" json:"req_id"`
	InterviewName    string                 `gorm:"type:varchar(255);not null" json:"interview_name"`
	CreatedByUserID  string                 `gorm:"type:varchar(255);not null;index" json:"created_by_user_id"`
	Status           models.InterviewStatus `gorm:"type:varchar(50);default:draft" json:"status"`
	Version          int                    `gorm:"not null;default:1;uniqueIndex:idx_interview_jd_version" json:"version"`
	Questions        []InterviewQuestion    `gorm:"constraint:OnDelete:CASCADE" json:"questions"`
}
