package post

type CreateReq struct {
	Caption string `json:"caption" validate:"required,max=255"`
}

// Item is a post annotated with its live like and comment counts.
type Item struct {
	Post
	LikeCounts    int64 `json:"like_counts"`
	CommentCounts int64 `json:"comment_counts"`
}
