package like

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"social-api/internal/shared/apperr"
	"social-api/pkg/kafka"
)

// PostChecker resolves whether a post id refers to an existing post.
type PostChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type Service interface {
	Toggle(ctx context.Context, postID, actorID uint) (liked bool, err error)
	Count(ctx context.Context, postID uint) (int64, error)
	IsLiked(ctx context.Context, postID, actorID uint) (bool, error)
}

type service struct {
	repo     Repository
	posts    PostChecker
	producer *kafka.Producer
	timeout  time.Duration
}

func NewService(repo Repository, posts PostChecker, producer *kafka.Producer, timeout time.Duration) Service {
	return &service{repo: repo, posts: posts, producer: producer, timeout: timeout}
}

func (s *service) Toggle(ctx context.Context, postID, actorID uint) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.ensurePost(ctx, postID); err != nil {
		return false, err
	}
	liked, err := s.repo.Toggle(ctx, postID, actorID)
	if err != nil {
		return false, err
	}

	kind := "post_unliked"
	if liked {
		kind = "post_liked"
	}
	event, _ := json.Marshal(map[string]any{"type": kind, "post_id": postID, "user_id": actorID})
	_ = s.producer.Publish(ctx, strconv.FormatUint(uint64(postID), 10), event)

	return liked, nil
}

func (s *service) Count(ctx context.Context, postID uint) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.ensurePost(ctx, postID); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, postID)
}

func (s *service) IsLiked(ctx context.Context, postID, actorID uint) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.ensurePost(ctx, postID); err != nil {
		return false, err
	}
	return s.repo.IsLiked(ctx, postID, actorID)
}

func (s *service) ensurePost(ctx context.Context, postID uint) error {
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("post")
	}
	return nil
}
