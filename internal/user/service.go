package user

import (
	"context"
	"time"

	"social-api/internal/media"
	"social-api/internal/shared/apperr"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, in RegisterReq, avatar *media.Upload) (*User, error)
	Login(ctx context.Context, in LoginReq) (*User, error)
	Get(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, id uint, in UpdateReq, avatar *media.Upload) (*User, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo    Repository
	store   media.Store
	timeout time.Duration
}

func NewService(repo Repository, store media.Store, timeout time.Duration) Service {
	return &service{repo: repo, store: store, timeout: timeout}
}

func (s *service) Register(ctx context.Context, in RegisterReq, avatar *media.Upload) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if existing, err := s.repo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, apperr.Validation("the email address is already taken")
	} else if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var profilePath string
	if avatar != nil {
		profilePath, err = media.SaveImage(ctx, s.store, media.AreaUsers, avatar)
		if err != nil {
			return nil, err
		}
	}

	return s.repo.Create(ctx, &User{
		Name:        in.Name,
		Email:       in.Email,
		Password:    string(hash),
		UserProfile: profilePath,
		ShortBio:    in.ShortBio,
	})
}

func (s *service) Login(ctx context.Context, in LoginReq) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	u, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)) != nil {
		return nil, apperr.ErrUnauthorized
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id uint) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateReq, avatar *media.Upload) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.ShortBio != "" {
		u.ShortBio = in.ShortBio
	}
	if avatar != nil {
		newPath, err := media.SaveImage(ctx, s.store, media.AreaUsers, avatar)
		if err != nil {
			return nil, err
		}
		if u.UserProfile != "" {
			_ = s.store.Remove(ctx, u.UserProfile)
		}
		u.UserProfile = newPath
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteCascade(ctx, id)
}
