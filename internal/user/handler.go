package user

import (
	"errors"
	"net/http"

	"social-api/internal/auth"
	"social-api/internal/media"
	"social-api/internal/shared/apperr"
	"social-api/internal/shared/httpx"
	"social-api/internal/shared/validate"
)

type Handler struct {
	svc  Service
	auth *auth.Auth
}

func NewHandler(svc Service, a *auth.Auth) *Handler {
	return &Handler{svc: svc, auth: a}
}

// Register accepts a multipart form: name, email, password,
// password_confirmation, optional short_bio and user_profile image.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseMultipartForm(4 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return apperr.Validation("malformed form")
	}
	in := RegisterReq{
		Name:                 r.FormValue("name"),
		Email:                r.FormValue("email"),
		Password:             r.FormValue("password"),
		PasswordConfirmation: r.FormValue("password_confirmation"),
		ShortBio:             r.FormValue("short_bio"),
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	avatar, err := formUpload(r, "user_profile")
	if err != nil {
		return err
	}

	u, err := h.svc.Register(r.Context(), in, avatar)
	if err != nil {
		return err
	}
	token, err := h.auth.Make(u.ID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, TokenResponse{Token: token}, http.StatusCreated)
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[LoginReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	u, err := h.svc.Login(r.Context(), in)
	if err != nil {
		return err
	}
	token, err := h.auth.Make(u.ID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, TokenResponse{Token: token}, http.StatusOK)
	return nil
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	u, err := h.svc.Get(r.Context(), uid)
	if err != nil {
		// A valid token for a vanished user is a stale session, not a
		// missing domain entity.
		if apperr.IsNotFound(err) {
			return apperr.ErrUnauthorized
		}
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := r.ParseMultipartForm(4 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return apperr.Validation("malformed form")
	}
	in := UpdateReq{
		Name:     r.FormValue("name"),
		ShortBio: r.FormValue("short_bio"),
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	avatar, err := formUpload(r, "user_profile")
	if err != nil {
		return err
	}
	u, err := h.svc.Update(r.Context(), uid, in, avatar)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusOK)
	return nil
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) error {
	tok, err := httpx.TokenFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.auth.Revoke(r.Context(), tok); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "success", "message": "logged out successfully"}, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	tok, err := httpx.TokenFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(r.Context(), tok.UserID); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.ErrUnauthorized
		}
		return err
	}
	_ = h.auth.Revoke(r.Context(), tok)
	httpx.WriteJSON(w, map[string]string{"status": "success", "message": "user deleted successfully and logged out"}, http.StatusOK)
	return nil
}

func formUpload(r *http.Request, field string) (*media.Upload, error) {
	file, hdr, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperr.Validation("invalid %s upload", field)
	}
	return &media.Upload{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Reader:      file,
	}, nil
}
