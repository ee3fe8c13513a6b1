package questioncache

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	questioncachestore "techscreen-backend/lib/question-cache/store"
	"techscreen-backend/models"
	dbmodels "techscreen-backend/models/db"
)

type Entry struct {
	Topic        string
	SkillLevel   string
	QuestionText string
	Criteria     dbmodels.Criteria
}

type Provider interface {
	// Put offers a question to its (topic, skill level) slot. The first
	// writer of a slot wins, later offers only bump the usage counter.
	Put(entry Entry) (created bool, err error)
	Lookup(topic, skillLevel string) (*dbmodels.QuestionCache, error)
}

func NewHandler(DB *gorm.DB) Provider {
	return &impl{
		store: questioncachestore.NewInstance(DB),
	}
}

type impl struct {
	store questioncachestore.Provider
}

// CacheKey is the md5 hex digest of "<topic>:<skill level>".
func CacheKey(topic, skillLevel string) string {
	return md5Hex(topic + ":" + skillLevel)
}

// RequestHash is the md5 hex digest of the question text.
func RequestHash(questionText string) string {
	return md5Hex(questionText)
}

func md5Hex(value string) string {
	sum := md5.Sum([]byte(value))
	return hex.EncodeToString(sum[:])
}

func (i impl) Put(entry Entry) (bool, error) {
	key := CacheKey(entry.Topic, entry.SkillLevel)
	logger := log.
		WithField("cache_key", key).
		WithField("topic", entry.Topic).
		WithField("skill_level", entry.SkillLevel)

	existing, err := i.store.GetByKey(key)
	if err != nil {
		return false, errors.Wrap(err, "find cached question")
	}
	if existing == nil {
		criteria := make(dbmodels.Criteria, len(entry.Criteria))
		for idx, c := range entry.Criteria {
			criteria[idx] = dbmodels.Criterion{Criterion: c.Criterion, Description: c.Description}
		}
		created, err := i.store.CreateIfAbsent(&dbmodels.QuestionCache{
			CacheKey:     key,
			RequestHash:  RequestHash(entry.QuestionText),
			Topic:        entry.Topic,
			SkillLevel:   entry.SkillLevel,
			QuestionText: entry.QuestionText,
			Criteria:     criteria,
			LastUsedAt:   time.Now(),
			UsageCount:   1,
		})
		if err != nil {
			return false, errors.Wrap(err, "create cached question")
		}
		if created {
			logger.Debug("question cached")
			return true, nil
		}
	}
	if err = i.store.IncrementUsage(key); err != nil {
		return false, errors.Wrap(err, "update cached question usage")
	}
	return false, nil
}

func (i impl) Lookup(topic, skillLevel string) (*dbmodels.QuestionCache, error) {
	key := CacheKey(topic, skillLevel)
	rec, err := i.store.GetByKey(key)
	if err != nil {
		log.WithField("cache_key", key).WithError(err).Error("failed to read question cache")
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	if err = i.store.IncrementUsage(key); err != nil {
		// usage counters are advisory
		log.WithField("cache_key", key).WithError(err).Warn("failed to update cached question usage")
		return rec, nil
	}
	rec.UsageCount++
	return rec, nil
}
