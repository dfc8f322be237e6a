package comment

type CreateReq struct {
	Comment  string `json:"comment" validate:"required,max=1000"`
	ParentID *uint  `json:"parent_id"`
}

type UpdateReq struct {
	Comment string `json:"comment" validate:"required,max=1000"`
}

type ReplyReq struct {
	ReplyComment string `json:"reply_comment" validate:"required,max=1000"`
}
