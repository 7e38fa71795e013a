package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog_app/internal/models"
)

type ProfileSQLite struct {
	db *sql.DB
}

func NewProfileSQLite(db *sql.DB) *ProfileSQLite {
	return &ProfileSQLite{db: db}
}

var _ ProfileRepo = (*ProfileSQLite)(nil)

const (
	selectProfileByUserSQL = `SELECT id, user_id, image FROM profiles WHERE user_id = ?`

	// upsert keeps the one-to-one pairing even for users created before profiles existed
	upsertProfileImageSQL = `
		INSERT INTO profiles (user_id, image) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET image = excluded.image`
)

// GetByUserID fetches the profile of a user. Returns (nil, nil) if not found.
func (r *ProfileSQLite) GetByUserID(ctx context.Context, userID int) (*models.Profile, error) {
	var p models.Profile
	err := r.db.QueryRowContext(ctx, selectProfileByUserSQL, userID).Scan(&p.ID, &p.UserID, &p.Image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select profile of user %d: %w", userID, err)
	}
	return &p, nil
}

// SetImage stores the avatar path of a user's profile.
func (r *ProfileSQLite) SetImage(ctx context.Context, userID int, image string) error {
	if image == "" {
		image = models.DefaultProfileImage
	}
	if _, err := r.db.ExecContext(ctx, upsertProfileImageSQL, userID, image); err != nil {
		return fmt.Errorf("set profile image of user %d: %w", userID, err)
	}
	return nil
}
