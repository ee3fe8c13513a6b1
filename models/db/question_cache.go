package dbmodels

import "time"

// QuestionCache stores one generated question per (topic, skill level) slot.
type QuestionCache struct {
	BaseModel
	CacheKey     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"cache_key"`
	RequestHash  string    `gorm:"type:varchar(255);not null;index" json:"request_hash"`
	Topic        string    `gorm:"type:varchar(255);not null" json:"topic"`
	SkillLevel   string    `gorm:"type:varchar(50)" json:"skill_level"`
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`
	Criteria     Criteria  `gorm:"type:text;not null" json:"criteria"`
	LastUsedAt   time.Time `json:"last_used_at"`
	UsageCount   int       `gorm:"default:1" json:"usage_count"`
}

func (QuestionCache) TableName() string {
	return "question_cache"
}
