package questioncachestore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "techscreen-backend/models/db"
)

type Provider interface {
	GetByKey(cacheKey string) (*dbmodels.QuestionCache, error)
	// CreateIfAbsent inserts rec unless its cache key is taken and reports whether it did.
	CreateIfAbsent(rec *dbmodels.QuestionCache) (bool, error)
	IncrementUsage(cacheKey string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByKey(cacheKey string) (rec *dbmodels.QuestionCache, err error) {
	err = i.db.
		Where("cache_key = ?", cacheKey).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) CreateIfAbsent(rec *dbmodels.QuestionCache) (bool, error) {
	tx := i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoNothing: true,
		}).
		Create(rec)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) IncrementUsage(cacheKey string) error {
	return i.db.
		Model(&dbmodels.QuestionCache{}).
		Where("cache_key = ?", cacheKey).
		Updates(map[string]interface{}{
			"usage_count":  gorm.Expr("usage_count + ?", 1),
			"last_used_at": time.Now(),
		}).
		Error
}
