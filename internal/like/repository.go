package like

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const countCacheTTL = time.Minute

type Repository interface {
	Toggle(ctx context.Context, postID, userID uint) (liked bool, err error)
	Count(ctx context.Context, postID uint) (int64, error)
	IsLiked(ctx context.Context, postID, userID uint) (bool, error)
}

type repository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewRepository(db *gorm.DB, rdb *redis.Client) Repository {
	return &repository{db: db, rdb: rdb}
}

func countKey(postID uint) string { return fmt.Sprintf("likes:count:%d", postID) }

// Toggle flips the like state inside a transaction. ON CONFLICT DO
// NOTHING on the composite key means a lost race with another insert
// still leaves exactly one row.
func (r *repository) Toggle(ctx context.Context, postID, userID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		liked = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&Like{PostID: postID, UserID: userID}).Error
	})
	if err != nil {
		return false, err
	}
	if r.rdb != nil {
		_ = r.rdb.Del(ctx, countKey(postID)).Err()
	}
	return liked, nil
}

func (r *repository) Count(ctx context.Context, postID uint) (int64, error) {
	if r.rdb != nil {
		if n, err := r.rdb.Get(ctx, countKey(postID)).Int64(); err == nil {
			return n, nil
		}
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&Like{}).
		Where("post_id = ?", postID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	if r.rdb != nil {
		_ = r.rdb.Set(ctx, countKey(postID), n, countCacheTTL).Err()
	}
	return n, nil
}

func (r *repository) IsLiked(ctx context.Context, postID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&n).Error
	return n > 0, err
}
