package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"blog_app/internal/gate"
	"blog_app/internal/models"
	"blog_app/internal/repository"
)

const maxTitleLength = 100

type CatalogService struct {
	posts repository.PostRepo
	users repository.Authorization
	now   func() time.Time
}

func NewCatalogService(posts repository.PostRepo, users repository.Authorization) *CatalogService {
	return &CatalogService{posts: posts, users: users, now: time.Now}
}

// List returns one page of all posts, newest first.
func (s *CatalogService) List(ctx context.Context, page int) (PostPage, error) {
	return s.listPage(ctx, 0, page)
}

// ListByUser returns one page of a single author's posts, newest first.
func (s *CatalogService) ListByUser(ctx context.Context, username string, page int) (PostPage, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return PostPage{}, err
	}
	if u == nil {
		return PostPage{}, ErrUserNotFound
	}
	return s.listPage(ctx, u.ID, page)
}

func (s *CatalogService) listPage(ctx context.Context, authorID, page int) (PostPage, error) {
	count, err := s.posts.Count(ctx, authorID)
	if err != nil {
		return PostPage{}, err
	}
	info, err := paginate(count, page, PostsPerPage)
	if err != nil {
		return PostPage{}, err
	}
	posts, err := s.posts.List(ctx, authorID, info.PerPage, info.Offset())
	if err != nil {
		return PostPage{}, err
	}
	return PostPage{Posts: posts, Page: info}, nil
}

func (s *CatalogService) Get(ctx context.Context, id int) (models.Post, error) {
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if p == nil {
		return models.Post{}, ErrPostNotFound
	}
	return *p, nil
}

// Create stores a post authored by actor. Anonymous actors are denied.
func (s *CatalogService) Create(ctx context.Context, actor models.Actor, in PostInput) (models.Post, error) {
	if err := gate.RequireLogin(actor).Err(gate.ActionCreate); err != nil {
		return models.Post{}, err
	}
	in, err := validatePost(in)
	if err != nil {
		return models.Post{}, err
	}

	p := models.Post{
		Title:      in.Title,
		Content:    in.Content,
		DatePosted: s.now().UTC(),
		AuthorID:   actor.UserID,
		Author:     actor.Username,
	}
	id, err := s.posts.Create(ctx, p)
	if err != nil {
		return models.Post{}, err
	}
	p.ID = id
	return p, nil
}

// Update edits title and content of a post owned by actor.
func (s *CatalogService) Update(ctx context.Context, actor models.Actor, id int, in PostInput) (models.Post, error) {
	p, err := s.editable(ctx, actor, id, gate.ActionUpdate)
	if err != nil {
		return models.Post{}, err
	}
	in, err = validatePost(in)
	if err != nil {
		return models.Post{}, err
	}

	p.Title = in.Title
	p.Content = in.Content
	// The gate already guarantees actor is the author; kept as an explicit re-assertion.
	p.AuthorID = actor.UserID

	if err := s.posts.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		return models.Post{}, err
	}
	return p, nil
}

// Delete removes a post owned by actor.
func (s *CatalogService) Delete(ctx context.Context, actor models.Actor, id int) error {
	if _, err := s.editable(ctx, actor, id, gate.ActionDelete); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// editable checks login before the lookup so anonymous callers never learn
// whether a post exists, then checks ownership.
func (s *CatalogService) editable(ctx context.Context, actor models.Actor, id int, action gate.Action) (models.Post, error) {
	if err := gate.RequireLogin(actor).Err(action); err != nil {
		return models.Post{}, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if err := gate.CanMutatePost(actor, p).Err(action); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func validatePost(in PostInput) (PostInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	switch {
	case in.Title == "":
		return in, &ValidationError{Field: "title", Reason: "this field is required"}
	case utf8.RuneCountInString(in.Title) > maxTitleLength:
		return in, &ValidationError{Field: "title", Reason: fmt.Sprintf("at most %d characters", maxTitleLength)}
	case strings.TrimSpace(in.Content) == "":
		return in, &ValidationError{Field: "content", Reason: "this field is required"}
	}
	return in, nil
}
