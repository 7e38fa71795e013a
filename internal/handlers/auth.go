package handlers

import (
	"errors"
	"net/http"

	"blog_app/internal/flash"
	"blog_app/internal/service"

	"github.com/gin-gonic/gin"
)

const registeredNotice = "Your account has been created! You are now able to log in"

// registerForm is the account creation payload.
type registerForm struct {
	Username  string `form:"username" json:"username" binding:"required,max=150" example:"alice"`
	Email     string `form:"email" json:"email" binding:"required,email" example:"alice@example.com"`
	Password1 string `form:"password1" json:"password1" binding:"required"`
	Password2 string `form:"password2" json:"password2" binding:"required,eqfield=Password1"`
}

// loginForm is the sign-in payload.
type loginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Next     string `form:"next" json:"next"`
}

func (h *Handler) registerForm(c *gin.Context) {
	h.render(c, http.StatusOK, gin.H{"title": "Register"})
}

// @Summary      Register
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Param        input  body  registerForm  true  "account"
// @Success      302  "redirect to /login/"
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /register/ [post]
func (h *Handler) register(c *gin.Context) {
	var input registerForm
	if ok := h.bindOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), service.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password1,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		}
		h.respondError(c, err, "auth_sign_up_failed", "")
		return
	}

	if h.log != nil {
		h.log.Infow("auth_signed_up", "user_id", id, "username", input.Username)
	}
	h.redirectWithNotice(c, loginPath, flash.Success(registeredNotice))
}

func (h *Handler) loginForm(c *gin.Context) {
	h.render(c, http.StatusOK, gin.H{"title": "Login", "next": c.Query("next")})
}

// @Summary      Login
// @Description  Returns a JWT and sets it as the HttpOnly token cookie. Redirects to a local next when given.
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        input  body      loginForm  true  "credentials"
// @Param        next   query     string     false  "local path to continue to"
// @Success      200    {object}  map[string]string
// @Success      302    "redirect to next"
// @Failure      401    {object}  map[string]string
// @Router       /login/ [post]
func (h *Handler) login(c *gin.Context) {
	var input loginForm
	if ok := h.bindOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidPassword) {
			if h.log != nil {
				h.log.Infow("auth_sign_in_failed", "username", input.Username, "err", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCreds})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_sign_in_failed", err, "username", input.Username)
		return
	}

	h.setTokenCookie(c, token)

	next := input.Next
	if next == "" {
		next = c.Query("next")
	}
	if safeNext(next) {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// setTokenCookie stores token as the HttpOnly session cookie.
func (h *Handler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, token, 0, "/", "", h.secureCookie, true)
}

// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /logout/ [post]
func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, "", -1, "/", "", h.secureCookie, true)
	// the rest of this response is rendered for the now anonymous client
	c.Set(actorKey, nil)
	h.render(c, http.StatusOK, gin.H{"title": "Logout", "status": "logged_out"})
}
