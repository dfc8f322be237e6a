package post

import (
	"context"
	"errors"

	"social-api/internal/shared/apperr"
	"social-api/internal/shared/pagination"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Post) (*Post, error)
	FindByID(ctx context.Context, id uint) (*Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ListPage(ctx context.Context, page int) ([]Post, int64, error)
	ListByUserPage(ctx context.Context, userID uint, page int) ([]Post, int64, error)
	CountsFor(ctx context.Context, postIDs []uint) (map[uint]Counts, error)
}

// Counts holds per-post annotation numbers.
type Counts struct {
	Likes    int64
	Comments int64
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Post) (*Post, error) {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Post, error) {
	var p Post
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("post")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Post{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repository) ListPage(ctx context.Context, page int) ([]Post, int64, error) {
	return r.pageQuery(ctx, r.db.WithContext(ctx).Model(&Post{}), page)
}

func (r *repository) ListByUserPage(ctx context.Context, userID uint, page int) ([]Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&Post{}).Where("user_id = ?", userID)
	return r.pageQuery(ctx, q, page)
}

func (r *repository) pageQuery(_ context.Context, q *gorm.DB, page int) ([]Post, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []Post
	err := q.Order("created_at DESC").
		Limit(pagination.PageSize).
		Offset(pagination.Offset(page)).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *repository) CountsFor(ctx context.Context, postIDs []uint) (map[uint]Counts, error) {
	out := make(map[uint]Counts, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	type row struct {
		PostID uint
		N      int64
	}

	var likeRows []row
	err := r.db.WithContext(ctx).Table("likes").
		Select("post_id, count(*) as n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&likeRows).Error
	if err != nil {
		return nil, err
	}
	for _, lr := range likeRows {
		c := out[lr.PostID]
		c.Likes = lr.N
		out[lr.PostID] = c
	}

	var commentRows []row
	err = r.db.WithContext(ctx).Table("comments").
		Select("post_id, count(*) as n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&commentRows).Error
	if err != nil {
		return nil, err
	}
	for _, cr := range commentRows {
		c := out[cr.PostID]
		c.Comments = cr.N
		out[cr.PostID] = c
	}
	return out, nil
}
