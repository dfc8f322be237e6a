package like

import (
	"net/http"

	"social-api/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) error {
	actor, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	postID, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	liked, err := h.svc.Toggle(r.Context(), postID, actor)
	if err != nil {
		return err
	}
	msg := "post unliked successfully"
	if liked {
		msg = "post liked successfully"
	}
	httpx.WriteJSON(w, map[string]any{
		"status":  "success",
		"message": msg,
		"liked":   liked,
	}, http.StatusOK)
	return nil
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) error {
	postID, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	n, err := h.svc.Count(r.Context(), postID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]int64{"likes_count": n}, http.StatusOK)
	return nil
}

func (h *Handler) IsLiked(w http.ResponseWriter, r *http.Request) error {
	actor, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	postID, err := httpx.PathUint(r, "post_id")
	if err != nil {
		return err
	}
	liked, err := h.svc.IsLiked(r.Context(), postID, actor)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]bool{"has_liked": liked}, http.StatusOK)
	return nil
}
