package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"blog_app/internal/gate"
	"blog_app/internal/media"
	"blog_app/internal/models"
	"blog_app/internal/repository"
	"blog_app/internal/thumbnail"
)

// ImageUpload is an avatar file received from a client.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ProfileUpdate carries the optional changes to an account. Empty fields are kept.
type ProfileUpdate struct {
	Username string
	Email    string
	Image    *ImageUpload
}

type ProfileService struct {
	users     repository.Authorization
	profiles  repository.ProfileRepo
	media     *media.Store
	normalize func(path string) (bool, error)
}

func NewProfileService(users repository.Authorization, profiles repository.ProfileRepo, store *media.Store) *ProfileService {
	return &ProfileService{
		users:     users,
		profiles:  profiles,
		media:     store,
		normalize: thumbnail.Normalize,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, actor models.Actor) (ProfileView, error) {
	if err := gate.RequireLogin(actor).Err(gate.ActionUpdateProfile); err != nil {
		return ProfileView{}, err
	}
	u, p, err := s.load(ctx, actor)
	if err != nil {
		return ProfileView{}, err
	}
	return newProfileView(u, p), nil
}

// UpdateProfile applies username/email changes and stores a new avatar.
// The upload is stored and its header checked before any account change is
// written, so an unreadable image leaves the account untouched. The avatar is
// normalized after the profile points at it; if that fails the previous image
// is restored and the error is returned.
func (s *ProfileService) UpdateProfile(ctx context.Context, actor models.Actor, in ProfileUpdate) (ProfileView, error) {
	if err := gate.RequireLogin(actor).Err(gate.ActionUpdateProfile); err != nil {
		return ProfileView{}, err
	}
	u, p, err := s.load(ctx, actor)
	if err != nil {
		return ProfileView{}, err
	}
	if err := gate.CanMutateProfile(actor, p).Err(gate.ActionUpdateProfile); err != nil {
		return ProfileView{}, err
	}

	staged := ""
	if in.Image != nil {
		if staged, err = s.stageImage(*in.Image); err != nil {
			return ProfileView{}, err
		}
	}

	if err := s.applyAccountChanges(ctx, &u, in); err != nil {
		s.discard(staged)
		return ProfileView{}, err
	}

	if staged != "" {
		if err := s.commitImage(ctx, p, staged); err != nil {
			return ProfileView{}, err
		}
		p.Image = staged
	}
	return newProfileView(u, p), nil
}

func (s *ProfileService) load(ctx context.Context, actor models.Actor) (models.User, models.Profile, error) {
	u, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return models.User{}, models.Profile{}, err
	}
	if u == nil {
		return models.User{}, models.Profile{}, ErrUserNotFound
	}
	p, err := s.profiles.GetByUserID(ctx, u.ID)
	if err != nil {
		return models.User{}, models.Profile{}, err
	}
	if p == nil {
		// registration always pairs a profile; fall back for rows that predate it
		p = &models.Profile{UserID: u.ID, Image: models.DefaultProfileImage}
	}
	return *u, *p, nil
}

func (s *ProfileService) applyAccountChanges(ctx context.Context, u *models.User, in ProfileUpdate) error {
	changed := false

	if name := strings.TrimSpace(in.Username); name != "" && name != u.Username {
		if err := validateUsername(name); err != nil {
			return err
		}
		other, err := s.users.GetByUsername(ctx, name)
		if err != nil {
			return err
		}
		if other != nil && other.ID != u.ID {
			return ErrUsernameTaken
		}
		u.Username = name
		changed = true
	}
	if email := strings.TrimSpace(in.Email); email != "" && email != u.Email {
		u.Email = email
		changed = true
	}
	if !changed {
		return nil
	}

	if err := s.users.Update(ctx, *u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// stageImage stores the upload and verifies it is a readable image of sane size.
func (s *ProfileService) stageImage(up ImageUpload) (string, error) {
	if s.media == nil {
		return "", errors.New("media storage is not configured")
	}
	if !thumbnail.Supported(up.Filename) {
		return "", ErrUnsupportedImage
	}

	rel, err := s.media.Save(media.ProfilePicsDir, up.Filename, up.Content)
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	abs, err := s.media.Path(rel)
	if err != nil {
		s.discard(rel)
		return "", err
	}
	if _, err := thumbnail.Check(abs); err != nil {
		s.discard(rel)
		return "", fmt.Errorf("check avatar: %w", err)
	}
	return rel, nil
}

// commitImage points the profile at rel and normalizes it.
func (s *ProfileService) commitImage(ctx context.Context, p models.Profile, rel string) error {
	abs, err := s.media.Path(rel)
	if err != nil {
		s.discard(rel)
		return err
	}
	if err := s.profiles.SetImage(ctx, p.UserID, rel); err != nil {
		s.discard(rel)
		return err
	}

	if _, err := s.normalize(abs); err != nil {
		_ = s.profiles.SetImage(ctx, p.UserID, p.Image)
		s.discard(rel)
		return fmt.Errorf("normalize avatar: %w", err)
	}

	if strings.HasPrefix(p.Image, media.ProfilePicsDir+"/") {
		s.discard(p.Image)
	}
	return nil
}

func (s *ProfileService) discard(rel string) {
	if rel != "" && s.media != nil {
		_ = s.media.Remove(rel)
	}
}

func newProfileView(u models.User, p models.Profile) ProfileView {
	image := p.Image
	if image == "" {
		image = models.DefaultProfileImage
	}
	return ProfileView{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Image:    image,
		ImageURL: media.URL(image),
	}
}
