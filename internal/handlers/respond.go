package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"blog_app/internal/flash"
	"blog_app/internal/gate"
	"blog_app/internal/service"
	"blog_app/internal/thumbnail"

	"github.com/gin-gonic/gin"
)

const (
	loginPath = "/login/"

	errInternal      = "internal server error"
	errPostNotFound  = "post not found"
	errUserNotFound  = "user not found"
	errPageNotFound  = "invalid page"
	errInvalidCreds  = "invalid credentials"
	errInvalidUpload = "invalid image upload"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// bindOrBadRequest binds a JSON or form body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.Request.URL.Path, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// render writes a page document together with the notices pending for the client.
func (h *Handler) render(c *gin.Context, code int, body gin.H) {
	body["messages"] = h.popNotices(c)
	if a := actorFrom(c); a.Authenticated() {
		body["user"] = a
	}
	c.JSON(code, body)
}

func (h *Handler) popNotices(c *gin.Context) []flash.Notice {
	ns, err := h.flash.Pop(c)
	if err != nil && h.log != nil {
		h.log.Errorw("flash_pop_failed", "err", err)
	}
	if ns == nil {
		ns = []flash.Notice{}
	}
	return ns
}

func (h *Handler) notify(c *gin.Context, n flash.Notice) {
	if err := h.flash.Add(c, n); err != nil && h.log != nil {
		h.log.Errorw("flash_add_failed", "err", err, "message", n.Message)
	}
}

func (h *Handler) redirectWithNotice(c *gin.Context, location string, n flash.Notice) {
	h.notify(c, n)
	c.Redirect(http.StatusFound, location)
}

// loginRedirect sends the client to the login page, coming back here afterwards.
func (h *Handler) loginRedirect(c *gin.Context, n flash.Notice) {
	next := c.Request.URL.RequestURI()
	h.redirectWithNotice(c, loginPath+"?next="+url.QueryEscape(next), n)
}

// requireLogin redirects anonymous clients to the login page with the notice for action.
// Returns false if the request was already handled.
func (h *Handler) requireLogin(c *gin.Context, action gate.Action) bool {
	if err := gate.RequireLogin(actorFrom(c)).Err(action); err != nil {
		h.respondError(c, err, "", "")
		return false
	}
	return true
}

// respondError maps service errors to responses. deniedTo is where a
// non-owner is sent back to.
func (h *Handler) respondError(c *gin.Context, err error, logKey, deniedTo string, kv ...interface{}) {
	var (
		denied  *gate.DeniedError
		invalid *service.ValidationError
	)
	switch {
	case errors.As(err, &denied):
		n := flash.Info(denied.Notice())
		if denied.Reason == gate.NotAuthenticated {
			h.loginRedirect(c, n)
			return
		}
		if deniedTo == "" {
			deniedTo = "/"
		}
		h.redirectWithNotice(c, deniedTo, n)
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errPostNotFound})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
	case errors.Is(err, service.ErrPageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errPageNotFound})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error(), "field": invalid.Field})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnsupportedImage), errors.Is(err, thumbnail.ErrDecode):
		h.logAndJSONError(c, http.StatusBadRequest, errInvalidUpload, logKey, err, kv...)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
	}
}

// parseID reads a positive integer path parameter; anything else is a 404.
func parseID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": errPostNotFound})
		return 0, false
	}
	return id, true
}

// parsePage reads ?page=N (default 1). A non-numeric page is a 404, like an out of range one.
func parsePage(c *gin.Context) (int, bool) {
	raw := c.Query("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errPageNotFound})
		return 0, false
	}
	return page, true
}

// safeNext accepts only local absolute paths as post-login targets.
func safeNext(next string) bool {
	return strings.HasPrefix(next, "/") &&
		!strings.HasPrefix(next, "//") &&
		!strings.HasPrefix(next, "/\\")
}

func postURL(id int) string {
	return "/post/" + strconv.Itoa(id) + "/"
}
