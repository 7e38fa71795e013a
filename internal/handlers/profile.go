package handlers

import (
	"errors"
	"net/http"

	"blog_app/internal/flash"
	"blog_app/internal/gate"
	"blog_app/internal/models"
	"blog_app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	profilePath          = "/profile/"
	profileUpdatedNotice = "Your account has been updated!"
	imageField           = "image"
)

// profileForm holds the optional account fields; the avatar travels as the multipart "image" file.
type profileForm struct {
	Username string `form:"username" json:"username" binding:"omitempty,max=150"`
	Email    string `form:"email" json:"email" binding:"omitempty,email"`
}

// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  service.ProfileView
// @Success      302  "redirect to login when anonymous"
// @Router       /profile/ [get]
func (h *Handler) profile(c *gin.Context) {
	view, err := h.services.GetProfile(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.respondError(c, err, "profile_get_failed", "/")
		return
	}
	h.render(c, http.StatusOK, gin.H{"title": "Profile", "profile": view})
}

// @Summary      Update profile
// @Description  Updates username and email and replaces the avatar. Avatars are shrunk to fit 300x300.
// @Tags         profile
// @Accept       multipart/form-data
// @Param        username  formData  string  false  "new username"
// @Param        email     formData  string  false  "new email"
// @Param        image     formData  file    false  "avatar"
// @Success      302  "redirect to /profile/"
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /profile/ [post]
func (h *Handler) updateProfile(c *gin.Context) {
	if !h.requireLogin(c, gate.ActionUpdateProfile) {
		return
	}
	var form profileForm
	if ok := h.bindOrBadRequest(c, &form); !ok {
		return
	}
	update := service.ProfileUpdate{Username: form.Username, Email: form.Email}

	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		fh, err := c.FormFile(imageField)
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			h.logAndJSONError(c, http.StatusBadRequest, errInvalidUpload, "profile_upload_read_failed", err)
			return
		default:
			f, err := fh.Open()
			if err != nil {
				h.logAndJSONError(c, http.StatusBadRequest, errInvalidUpload, "profile_upload_open_failed", err)
				return
			}
			defer func() { _ = f.Close() }()
			update.Image = &service.ImageUpload{Filename: fh.Filename, Content: f}
		}
	}

	actor := actorFrom(c)
	view, err := h.services.UpdateProfile(c.Request.Context(), actor, update)
	if err != nil {
		h.respondError(c, err, "profile_update_failed", profilePath, "user_id", actor.UserID)
		return
	}
	if view.Username != "" && view.Username != actor.Username {
		h.refreshToken(c, models.Actor{UserID: actor.UserID, Username: view.Username})
	}
	h.redirectWithNotice(c, profilePath, flash.Success(profileUpdatedNotice))
}

// refreshToken replaces the token cookie so the new username is carried by
// later requests. The account is already saved, so a failure is only logged.
func (h *Handler) refreshToken(c *gin.Context, actor models.Actor) {
	token, err := h.services.IssueToken(actor)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("auth_token_refresh_failed", "user_id", actor.UserID, "err", err)
		}
		return
	}
	h.setTokenCookie(c, token)
}
