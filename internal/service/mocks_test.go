package service

import (
	"context"
	"sort"
	"sync"

	"blog_app/internal/models"
	"blog_app/internal/repository"
)

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(u models.User, image string) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)
	GetByIDFn       func(id int) (*models.User, error)
	UpdateFn        func(u models.User) error

	createCalls []struct {
		user  models.User
		image string
	}
	getCalls    []string
	updateCalls []models.User
}

func (m *mockAuthRepo) CreateWithProfile(_ context.Context, u models.User, image string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		user  models.User
		image string
	}{user: u, image: image})
	return m.CreateFn(u, image)
}

func (m *mockAuthRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

func (m *mockAuthRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	return m.GetByIDFn(id)
}

func (m *mockAuthRepo) Update(_ context.Context, u models.User) error {
	m.updateCalls = append(m.updateCalls, u)
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(u)
}

// memPostRepo is an in-memory repository.PostRepo ordering like the SQL one.
type memPostRepo struct {
	mu      sync.Mutex
	nextID  int
	posts   map[int]models.Post
	authors map[int]string
}

var _ repository.PostRepo = (*memPostRepo)(nil)

func newMemPostRepo(authors map[int]string) *memPostRepo {
	return &memPostRepo{nextID: 1, posts: map[int]models.Post{}, authors: authors}
}

func (r *memPostRepo) Create(_ context.Context, p models.Post) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	p.Author = ""
	r.posts[p.ID] = p
	return p.ID, nil
}

func (r *memPostRepo) Get(_ context.Context, id int) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	p.Author = r.authors[p.AuthorID]
	return &p, nil
}

func (r *memPostRepo) Update(_ context.Context, p models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.posts[p.ID]
	if !ok {
		return repository.ErrNoRows
	}
	old.Title, old.Content, old.AuthorID = p.Title, p.Content, p.AuthorID
	r.posts[p.ID] = old
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNoRows
	}
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) filtered(authorID int) []models.Post {
	out := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if authorID == 0 || p.AuthorID == authorID {
			p.Author = r.authors[p.AuthorID]
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DatePosted.Equal(out[j].DatePosted) {
			return out[i].ID > out[j].ID
		}
		return out[i].DatePosted.After(out[j].DatePosted)
	})
	return out
}

func (r *memPostRepo) Count(_ context.Context, authorID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.filtered(authorID)), nil
}

func (r *memPostRepo) List(_ context.Context, authorID, limit, offset int) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.filtered(authorID)
	if offset >= len(all) {
		return []models.Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// stubProfileRepo records SetImage calls.
type stubProfileRepo struct {
	profile  *models.Profile
	getErr   error
	setErr   error
	setCalls []string
}

func (s *stubProfileRepo) GetByUserID(_ context.Context, userID int) (*models.Profile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.profile == nil {
		return nil, nil
	}
	p := *s.profile
	return &p, nil
}

func (s *stubProfileRepo) SetImage(_ context.Context, userID int, image string) error {
	s.setCalls = append(s.setCalls, image)
	if s.setErr != nil {
		return s.setErr
	}
	if s.profile != nil {
		s.profile.Image = image
	}
	return nil
}
