package service

import (
	"context"
	"time"

	"blog_app/internal/media"
	"blog_app/internal/models"
	"blog_app/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, in RegisterInput) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (models.Actor, error)
	// IssueToken signs a fresh token for an already authenticated actor,
	// e.g. after the username changed.
	IssueToken(actor models.Actor) (string, error)
}

// Catalog exposes the post listing and the ownership-gated post mutations.
type Catalog interface {
	List(ctx context.Context, page int) (PostPage, error)
	ListByUser(ctx context.Context, username string, page int) (PostPage, error)
	Get(ctx context.Context, id int) (models.Post, error)
	Create(ctx context.Context, actor models.Actor, in PostInput) (models.Post, error)
	Update(ctx context.Context, actor models.Actor, id int, in PostInput) (models.Post, error)
	Delete(ctx context.Context, actor models.Actor, id int) error
}

// Profiles exposes the acting user's own account and avatar.
type Profiles interface {
	GetProfile(ctx context.Context, actor models.Actor) (ProfileView, error)
	UpdateProfile(ctx context.Context, actor models.Actor, in ProfileUpdate) (ProfileView, error)
}

type Service struct {
	Authorization
	Catalog
	Profiles
}

// Options carries the settings services need beyond the repositories.
type Options struct {
	SigningKey string
	TokenTTL   time.Duration
	Media      *media.Store
}

func NewService(repos *repository.Repository, opts Options) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
		Catalog:       NewCatalogService(repos.Posts, repos.Auth),
		Profiles:      NewProfileService(repos.Auth, repos.Profiles, opts.Media),
	}
}
