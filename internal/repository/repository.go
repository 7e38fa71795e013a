package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"blog_app/internal/models"
)

// ErrDuplicate is returned when a write hits a UNIQUE constraint.
var ErrDuplicate = errors.New("duplicate value")

type Authorization interface {
	// CreateWithProfile inserts the user and its paired profile in one transaction.
	CreateWithProfile(ctx context.Context, u models.User, image string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Update(ctx context.Context, u models.User) error
}

type PostRepo interface {
	Create(ctx context.Context, p models.Post) (int, error)
	Get(ctx context.Context, id int) (*models.Post, error)
	Update(ctx context.Context, p models.Post) error
	Delete(ctx context.Context, id int) error
	// Count and List treat authorID 0 as "all authors".
	Count(ctx context.Context, authorID int) (int, error)
	List(ctx context.Context, authorID, limit, offset int) ([]models.Post, error)
}

type ProfileRepo interface {
	GetByUserID(ctx context.Context, userID int) (*models.Profile, error)
	SetImage(ctx context.Context, userID int, image string) error
}

type Repository struct {
	Auth     Authorization
	Posts    PostRepo
	Profiles ProfileRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:     NewUserRepository(db),
		Posts:    NewPostSQLite(db),
		Profiles: NewProfileSQLite(db),
	}
}

// isUniqueViolation recognises SQLite's constraint message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
