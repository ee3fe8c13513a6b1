package dbmodels

import (
	"time"

	"techscreen-backend/models"
)

// GenerationLog is the audit row of one generation attempt.
type GenerationLog struct {
	BaseModel
	OperationType models.OperationType    `gorm:"type:varchar(50);not null" json:"operation_type"`
	ReqID         string                  `gorm:"type:varchar(255);not null;index" json:"req_id"`
	UserID        string                  `gorm:"type:varchar(255);not null;index" json:"user_id"`
	Status        models.GenerationStatus `gorm:"type:varchar(50);not null" json:"status"`
	ErrorKind     models.ErrorKind        `gorm:"type:varchar(50)" json:"error_kind,omitempty"`
	ErrorMessage  string                  `gorm:"type:text" json:"error_message,omitempty"`
	TokensUsed    int                     `json:"tokens_used"`
	Model         string                  `gorm:"type:varchar(255)" json:"model,omitempty"`
	StartedAt     time.Time               `json:"started_at"`
	CompletedAt   *time.Time              `json:"completed_at"`
}
