package comment

import (
	"context"
	"time"

	"social-api/internal/shared/apperr"
	"social-api/internal/shared/pagination"
)

// PostChecker resolves whether a post id refers to an existing post.
type PostChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type Service interface {
	List(ctx context.Context, postID uint, page int) (pagination.Page[Node], error)
	Create(ctx context.Context, postID, authorID uint, in CreateReq) (*Comment, error)
	CreateReply(ctx context.Context, parentID, authorID uint, text string) (*Comment, error)
	Get(ctx context.Context, postID, commentID uint) (*Comment, error)
	Update(ctx context.Context, postID, commentID, actorID uint, text string) (*Comment, error)
	Delete(ctx context.Context, postID, commentID, actorID uint) error
}

type service struct {
	repo    Repository
	posts   PostChecker
	timeout time.Duration
}

func NewService(repo Repository, posts PostChecker, timeout time.Duration) Service {
	return &service{repo: repo, posts: posts, timeout: timeout}
}

func (s *service) List(ctx context.Context, postID uint, page int) (pagination.Page[Node], error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.ensurePost(ctx, postID); err != nil {
		return pagination.Page[Node]{}, err
	}

	top, total, err := s.repo.ListTopLevelPage(ctx, postID, page)
	if err != nil {
		return pagination.Page[Node]{}, err
	}

	parentIDs := make([]uint, len(top))
	for i, c := range top {
		parentIDs[i] = c.ID
	}
	replies, err := s.repo.ListReplies(ctx, parentIDs)
	if err != nil {
		return pagination.Page[Node]{}, err
	}

	userIDs := make([]uint, 0, len(top)+len(replies))
	for _, c := range top {
		userIDs = append(userIDs, c.UserID)
	}
	for _, c := range replies {
		userIDs = append(userIDs, c.UserID)
	}
	authors, err := s.repo.AuthorsFor(ctx, userIDs)
	if err != nil {
		return pagination.Page[Node]{}, err
	}

	byParent := make(map[uint][]Reply)
	for _, c := range replies {
		byParent[*c.ParentID] = append(byParent[*c.ParentID], Reply{Comment: c, User: authors[c.UserID]})
	}

	nodes := make([]Node, len(top))
	for i, c := range top {
		children := byParent[c.ID]
		if children == nil {
			children = []Reply{}
		}
		nodes[i] = Node{Comment: c, User: authors[c.UserID], ReplyComment: children}
	}
	return pagination.Shape(nodes, page, total), nil
}

func (s *service) Create(ctx context.Context, postID, authorID uint, in CreateReq) (*Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		parent, err := s.repo.FindByID(ctx, *in.ParentID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.Validation("parent comment does not exist")
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperr.Validation("parent comment does not belong to this post")
		}
		if parent.ParentID != nil {
			return nil, apperr.Validation("cannot reply to a reply")
		}
	}
	return s.repo.Create(ctx, &Comment{
		PostID:   postID,
		UserID:   authorID,
		ParentID: in.ParentID,
		Comment:  in.Comment,
	})
}

// CreateReply serves the legacy replies route: it resolves the parent,
// then creates a child comment on the parent's post.
func (s *service) CreateReply(ctx context.Context, parentID, authorID uint, text string) (*Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.ParentID != nil {
		return nil, apperr.Validation("cannot reply to a reply")
	}
	return s.repo.Create(ctx, &Comment{
		PostID:   parent.PostID,
		UserID:   authorID,
		ParentID: &parent.ID,
		Comment:  text,
	})
}

func (s *service) Get(ctx context.Context, postID, commentID uint) (*Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.FindByPostAndID(ctx, postID, commentID)
}

func (s *service) Update(ctx context.Context, postID, commentID, actorID uint, text string) (*Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.repo.FindByPostAndID(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if c.UserID != actorID {
		return nil, apperr.Forbidden("not the author of this comment")
	}
	c.Comment = text
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, postID, commentID, actorID uint) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.repo.FindByPostAndID(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if c.UserID != actorID {
		return apperr.Forbidden("not the author of this comment")
	}
	return s.repo.DeleteCascade(ctx, c.ID)
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
