package handlers

import (
	"context"
	"io"
	"net/http"

	"blog_app/internal/gate"
	"blog_app/internal/models"
	"blog_app/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

// mockAuth resolves tokens from a fixed table.
type mockAuth struct {
	signUpID    int
	signUpErr   error
	genToken    string
	genTokenErr error
	actors      map[string]models.Actor

	lastSignUp      service.RegisterInput
	lastGenUsername string
	lastGenPassword string
	signUpCalls     int
	issued          []models.Actor
}

func (m *mockAuth) SignUp(ctx context.Context, in service.RegisterInput) (int, error) {
	m.signUpCalls++
	m.lastSignUp = in
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genToken, m.genTokenErr
}
func (m *mockAuth) IssueToken(actor models.Actor) (string, error) {
	m.issued = append(m.issued, actor)
	return "reissued-" + actor.Username, nil
}
func (m *mockAuth) ParseToken(token string) (models.Actor, error) {
	if a, ok := m.actors[token]; ok {
		return a, nil
	}
	return models.Actor{}, service.ErrInvalidToken
}

// mockCatalog keeps posts in a map and applies the same ownership rules as
// the real catalog, so handler tests see realistic denials.
type mockCatalog struct {
	posts   map[int]models.Post
	nextID  int
	page    service.PostPage
	listErr error

	lastPage     int
	lastUsername string
	createCalls  int
	updateCalls  int
	deleteCalls  int
}

func newMockCatalog(posts ...models.Post) *mockCatalog {
	m := &mockCatalog{posts: map[int]models.Post{}, nextID: 1}
	for _, p := range posts {
		m.posts[p.ID] = p
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	return m
}

func (m *mockCatalog) List(ctx context.Context, page int) (service.PostPage, error) {
	m.lastPage = page
	if page < 1 || (page > 1 && page > m.page.Page.NumPages) {
		return service.PostPage{}, service.ErrPageNotFound
	}
	return m.page, m.listErr
}
func (m *mockCatalog) ListByUser(ctx context.Context, username string, page int) (service.PostPage, error) {
	m.lastUsername = username
	m.lastPage = page
	if username == "ghost" {
		return service.PostPage{}, service.ErrUserNotFound
	}
	return m.page, m.listErr
}
func (m *mockCatalog) Get(ctx context.Context, id int) (models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return models.Post{}, service.ErrPostNotFound
	}
	return p, nil
}
func (m *mockCatalog) Create(ctx context.Context, actor models.Actor, in service.PostInput) (models.Post, error) {
	m.createCalls++
	if err := gate.RequireLogin(actor).Err(gate.ActionCreate); err != nil {
		return models.Post{}, err
	}
	p := models.Post{ID: m.nextID, Title: in.Title, Content: in.Content, AuthorID: actor.UserID, Author: actor.Username}
	m.posts[p.ID] = p
	m.nextID++
	return p, nil
}
func (m *mockCatalog) Update(ctx context.Context, actor models.Actor, id int, in service.PostInput) (models.Post, error) {
	m.updateCalls++
	p, err := m.editable(actor, id, gate.ActionUpdate)
	if err != nil {
		return models.Post{}, err
	}
	p.Title, p.Content = in.Title, in.Content
	m.posts[id] = p
	return p, nil
}
func (m *mockCatalog) Delete(ctx context.Context, actor models.Actor, id int) error {
	m.deleteCalls++
	if _, err := m.editable(actor, id, gate.ActionDelete); err != nil {
		return err
	}
	delete(m.posts, id)
	return nil
}
func (m *mockCatalog) editable(actor models.Actor, id int, action gate.Action) (models.Post, error) {
	if err := gate.RequireLogin(actor).Err(action); err != nil {
		return models.Post{}, err
	}
	p, ok := m.posts[id]
	if !ok {
		return models.Post{}, service.ErrPostNotFound
	}
	return p, gate.CanMutatePost(actor, p).Err(action)
}

type mockProfiles struct {
	view      service.ProfileView
	updateErr error

	lastUpdate   service.ProfileUpdate
	lastImage    []byte
	updateCalled int
}

func (m *mockProfiles) GetProfile(ctx context.Context, actor models.Actor) (service.ProfileView, error) {
	if err := gate.RequireLogin(actor).Err(gate.ActionUpdateProfile); err != nil {
		return service.ProfileView{}, err
	}
	return m.view, nil
}
func (m *mockProfiles) UpdateProfile(ctx context.Context, actor models.Actor, in service.ProfileUpdate) (service.ProfileView, error) {
	m.updateCalled++
	m.lastUpdate = in
	if in.Image != nil {
		m.lastImage, _ = io.ReadAll(in.Image.Content)
	}
	if err := gate.RequireLogin(actor).Err(gate.ActionUpdateProfile); err != nil {
		return service.ProfileView{}, err
	}
	return m.view, m.updateErr
}

// ---- Shared Test Helpers ----

var (
	alice = models.Actor{UserID: 1, Username: "alice"}
	bob   = models.Actor{UserID: 2, Username: "bob"}
)

func newMockAuth() *mockAuth {
	return &mockAuth{actors: map[string]models.Actor{
		"alice-token": alice,
		"bob-token":   bob,
	}}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
