package comment

import (
	"net/http"

	"social-api/internal/shared/httpx"
	"social-api/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

// List handles GET /posts/{post_id}/comments, which is public.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	postID, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	page := httpx.QueryInt(r, "page", 1)
	out, err := h.svc.List(r.Context(), postID, page)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	actor, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	postID, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	in, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	c, err := h.svc.Create(r.Context(), postID, actor, in)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{
		"message": "comment created successfully",
		"comment": c,
	}, http.StatusCreated)
	return nil
}

// CreateReply handles POST /comments/{comment_id}/replies.
func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) error {
	actor, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	parentID, err := httpx.PathUint(r, "comment_id")
	if err != nil {
		return err
	}
	in, err := httpx.Decode[ReplyReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	c, err := h.svc.CreateReply(r.Context(), parentID, actor, in.ReplyComment)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{
		"message": "reply created successfully",
		"comment": c,
	}, http.StatusCreated)
	return nil
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) error {
	postID, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	commentID, err := httpx.PathUint(r, "comment_id")
	if err != nil {
		return err
	}
	c, err := h.svc.Get(r.Context(), postID, commentID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"comment": c}, http.StatusOK)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	actor, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	postID, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	commentID, err := httpx.PathUint(r, "comment_id")
	if err != nil {
		return err
	}
	in, err := httpx.Decode[UpdateReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	c, err := h.svc.Update(r.Context(), postID, commentID, actor, in.Comment)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{
		"message": "comment updated successfully",
		"comment": c,
	}, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	actor, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	postID, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	commentID, err := httpx.PathUint(r, "comment_id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(r.Context(), postID, commentID, actor); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"message": "comment deleted successfully"}, http.StatusOK)
	return nil
}
