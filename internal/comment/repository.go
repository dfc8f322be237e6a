package comment

import (
	"context"
	"errors"

	"social-api/internal/shared/apperr"
	"social-api/internal/shared/pagination"
	"social-api/internal/user"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Comment) (*Comment, error)
	FindByID(ctx context.Context, id uint) (*Comment, error)
	FindByPostAndID(ctx context.Context, postID, commentID uint) (*Comment, error)
	Update(ctx context.Context, c *Comment) error
	DeleteCascade(ctx context.Context, id uint) error
	ListTopLevelPage(ctx context.Context, postID uint, page int) ([]Comment, int64, error)
	ListReplies(ctx context.Context, parentIDs []uint) ([]Comment, error)
	AuthorsFor(ctx context.Context, userIDs []uint) (map[uint]user.Author, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Comment) (*Comment, error) {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Comment, error) {
	var c Comment
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("comment")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByPostAndID(ctx context.Context, postID, commentID uint) (*Comment, error) {
	var c Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		First(&c, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("comment")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Comment) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteCascade removes a comment and its replies in one transaction.
func (r *repository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Comment{}, id).Error
	})
}

func (r *repository) ListTopLevelPage(ctx context.Context, postID uint, page int) ([]Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&Comment{}).
		Where("post_id = ? AND parent_id IS NULL", postID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var comments []Comment
	err := q.Order("created_at ASC").
		Limit(pagination.PageSize).
		Offset(pagination.Offset(page)).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *repository) ListReplies(ctx context.Context, parentIDs []uint) ([]Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var replies []Comment
	err := r.db.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

func (r *repository) AuthorsFor(ctx context.Context, userIDs []uint) (map[uint]user.Author, error) {
	out := make(map[uint]user.Author, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var authors []user.Author
	err := r.db.WithContext(ctx).Table("users").
		Select("id, name, user_profile").
		Where("id IN ?", userIDs).
		Scan(&authors).Error
	if err != nil {
		return nil, err
	}
	for _, a := range authors {
		out[a.ID] = a
	}
	return out, nil
}
