package post

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"social-api/internal/media"
	"social-api/internal/shared/apperr"
	"social-api/internal/shared/pagination"
	"social-api/pkg/kafka"
)

// UserChecker resolves whether a user id refers to an existing user.
type UserChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type Service interface {
	Create(ctx context.Context, userID uint, in CreateReq, image *media.Upload) (*Post, error)
	List(ctx context.Context, page int) (pagination.Page[Item], error)
	ListByUser(ctx context.Context, userID uint, page int) (pagination.Page[Item], error)
	Get(ctx context.Context, id uint) (*Post, error)
}

type service struct {
	repo     Repository
	users    UserChecker
	store    media.Store
	producer *kafka.Producer
	timeout  time.Duration
}

func NewService(repo Repository, users UserChecker, store media.Store, producer *kafka.Producer, timeout time.Duration) Service {
	return &service{repo: repo, users: users, store: store, producer: producer, timeout: timeout}
}

func (s *service) Create(ctx context.Context, userID uint, in CreateReq, image *media.Upload) (*Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user")
	}

	var imagePath string
	if image != nil {
		imagePath, err = media.SaveImage(ctx, s.store, media.AreaPosts, image)
		if err != nil {
			return nil, err
		}
	}

	p, err := s.repo.Create(ctx, &Post{UserID: userID, Caption: in.Caption, Image: imagePath})
	if err != nil {
		return nil, err
	}

	event, _ := json.Marshal(map[string]any{"type": "post_created", "post_id": p.ID, "user_id": p.UserID})
	_ = s.producer.Publish(ctx, strconv.FormatUint(uint64(p.ID), 10), event)

	return p, nil
}

func (s *service) List(ctx context.Context, page int) (pagination.Page[Item], error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	posts, total, err := s.repo.ListPage(ctx, page)
	if err != nil {
		return pagination.Page[Item]{}, err
	}
	items, err := s.annotate(ctx, posts)
	if err != nil {
		return pagination.Page[Item]{}, err
	}
	return pagination.Shape(items, page, total), nil
}

func (s *service) ListByUser(ctx context.Context, userID uint, page int) (pagination.Page[Item], error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	posts, total, err := s.repo.ListByUserPage(ctx, userID, page)
	if err != nil {
		return pagination.Page[Item]{}, err
	}
	items, err := s.annotate(ctx, posts)
	if err != nil {
		return pagination.Page[Item]{}, err
	}
	return pagination.Shape(items, page, total), nil
}

func (s *service) Get(ctx context.Context, id uint) (*Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.FindByID(ctx, id)
}

func (s *service) annotate(ctx context.Context, posts []Post) ([]Item, error) {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts, err := s.repo.CountsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(posts))
	for i, p := range posts {
		c := counts[p.ID]
		items[i] = Item{Post: p, LikeCounts: c.Likes, CommentCounts: c.Comments}
	}
	return items, nil
}
