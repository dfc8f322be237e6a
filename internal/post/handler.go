package post

import (
	"errors"
	"net/http"

	"social-api/internal/media"
	"social-api/internal/shared/apperr"
	"social-api/internal/shared/httpx"
	"social-api/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

// Create handles POST /post-create/{user_id}. The path user must be the
// authenticated actor; posting on someone else's behalf is forbidden.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	actor, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	userID, err := httpx.PathUint(r, "user_id")
	if err != nil {
		return err
	}
	if userID != actor {
		return apperr.Forbidden("cannot create posts for another user")
	}

	if err := r.ParseMultipartForm(4 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return apperr.Validation("malformed form")
	}
	in := CreateReq{Caption: r.FormValue("caption")}
	if err := validate.Struct(in); err != nil {
		return err
	}

	var image *media.Upload
	if file, hdr, ferr := r.FormFile("image"); ferr == nil {
		image = &media.Upload{
			Filename:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Size:        hdr.Size,
			Reader:      file,
		}
	} else if !errors.Is(ferr, http.ErrMissingFile) && !errors.Is(ferr, http.ErrNotMultipart) {
		return apperr.Validation("invalid image upload")
	}

	p, err := h.svc.Create(r.Context(), userID, in, image)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{
		"status":  "success",
		"message": "post created successfully",
		"post":    p,
	}, http.StatusCreated)
	return nil
}

// List handles GET /posts, public, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	page := httpx.QueryInt(r, "page", 1)
	out, err := h.svc.List(r.Context(), page)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}

// ListMine handles POST /post-user and lists the actor's own posts.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) error {
	actor, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	page := httpx.QueryInt(r, "page", 1)
	out, err := h.svc.ListByUser(r.Context(), actor, page)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusOK)
	return nil
}
