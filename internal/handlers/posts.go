package handlers

import (
	"net/http"

	"blog_app/internal/gate"
	"blog_app/internal/models"
	"blog_app/internal/service"

	"github.com/gin-gonic/gin"
)

// postForm is the body of the create and update actions.
type postForm struct {
	Title   string `form:"title" json:"title" binding:"required,max=100" example:"First post"`
	Content string `form:"content" json:"content" binding:"required" example:"Hello, world"`
}

func (f postForm) input() service.PostInput {
	return service.PostInput{Title: f.Title, Content: f.Content}
}

// @Summary      List posts
// @Description  All posts, newest first, 5 per page.
// @Tags         posts
// @Produce      json
// @Param        page  query     int  false  "page number"
// @Success      200   {object}  map[string]interface{}  "posts, page, messages"
// @Failure      404   {object}  map[string]string
// @Router       / [get]
func (h *Handler) home(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	res, err := h.services.List(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err, "post_list_failed", "", "page", page)
		return
	}
	h.render(c, http.StatusOK, gin.H{"title": "Home", "posts": res.Posts, "page": res.Page})
}

// @Summary      List posts of a user
// @Tags         posts
// @Produce      json
// @Param        username  path      string  true   "author username"
// @Param        page      query     int     false  "page number"
// @Success      200       {object}  map[string]interface{}
// @Failure      404       {object}  map[string]string
// @Router       /user/{username} [get]
func (h *Handler) userPosts(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	username := c.Param("username")
	res, err := h.services.ListByUser(c.Request.Context(), username, page)
	if err != nil {
		h.respondError(c, err, "post_list_by_user_failed", "", "username", username, "page", page)
		return
	}
	h.render(c, http.StatusOK, gin.H{
		"title":    "Posts by " + username,
		"username": username,
		"posts":    res.Posts,
		"page":     res.Page,
	})
}

// @Summary      Post detail
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /post/{id}/ [get]
func (h *Handler) postDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	post, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "post_get_failed", "", "id", id)
		return
	}
	h.render(c, http.StatusOK, gin.H{"title": post.Title, "post": post})
}

func (h *Handler) createForm(c *gin.Context) {
	if !h.requireLogin(c, gate.ActionCreate) {
		return
	}
	h.render(c, http.StatusOK, gin.H{"title": "New Post", "form": postForm{}})
}

// @Summary      Create post
// @Description  Author is the logged in user. Anonymous clients are redirected to the login page.
// @Tags         posts
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Param        input  body  postForm  true  "post"
// @Success      302  "redirect to /post/{id}/"
// @Failure      400  {object}  map[string]string
// @Router       /post/new/ [post]
func (h *Handler) createPost(c *gin.Context) {
	if !h.requireLogin(c, gate.ActionCreate) {
		return
	}
	var form postForm
	if ok := h.bindOrBadRequest(c, &form); !ok {
		return
	}

	post, err := h.services.Create(c.Request.Context(), actorFrom(c), form.input())
	if err != nil {
		h.respondError(c, err, "post_create_failed", "")
		return
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}

// ownedPost loads the post named by the path for a mutation, in the order
// login, lookup, ownership. Anonymous and non-owner clients are redirected
// with a notice. Returns false if the request was already handled.
func (h *Handler) ownedPost(c *gin.Context, action gate.Action) (models.Post, bool) {
	if !h.requireLogin(c, action) {
		return models.Post{}, false
	}
	id, ok := parseID(c, "id")
	if !ok {
		return models.Post{}, false
	}
	post, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "post_get_failed", "", "id", id)
		return models.Post{}, false
	}
	if err := gate.CanMutatePost(actorFrom(c), post).Err(action); err != nil {
		h.respondError(c, err, "", postURL(id))
		return models.Post{}, false
	}
	return post, true
}

func (h *Handler) updateForm(c *gin.Context) {
	post, ok := h.ownedPost(c, gate.ActionUpdate)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, gin.H{"title": "Update Post", "post": post})
}

// @Summary      Update post
// @Description  Only the author may update a post; others are redirected back to it.
// @Tags         posts
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Param        id     path  int       true  "post id"
// @Param        input  body  postForm  true  "post"
// @Success      302  "redirect to /post/{id}/"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /post/{id}/update/ [post]
func (h *Handler) updatePost(c *gin.Context) {
	post, ok := h.ownedPost(c, gate.ActionUpdate)
	if !ok {
		return
	}
	var form postForm
	if ok := h.bindOrBadRequest(c, &form); !ok {
		return
	}

	if _, err := h.services.Update(c.Request.Context(), actorFrom(c), post.ID, form.input()); err != nil {
		h.respondError(c, err, "post_update_failed", postURL(post.ID), "id", post.ID)
		return
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}

func (h *Handler) deleteConfirm(c *gin.Context) {
	post, ok := h.ownedPost(c, gate.ActionDelete)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, gin.H{"title": "Delete Post", "post": post})
}

// @Summary      Delete post
// @Description  Only the author may delete a post; others are redirected back to it.
// @Tags         posts
// @Param        id   path  int  true  "post id"
// @Success      302  "redirect to /"
// @Failure      404  {object}  map[string]string
// @Router       /post/{id}/delete/ [post]
func (h *Handler) deletePost(c *gin.Context) {
	post, ok := h.ownedPost(c, gate.ActionDelete)
	if !ok {
		return
	}
	if err := h.services.Delete(c.Request.Context(), actorFrom(c), post.ID); err != nil {
		h.respondError(c, err, "post_delete_failed", postURL(post.ID), "id", post.ID)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
