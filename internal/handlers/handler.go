package handlers

import (
	"time"

	_ "blog_app/docs"
	"blog_app/internal/flash"
	"blog_app/internal/logger"
	"blog_app/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// maxUploadMemory bounds the in-memory part of a multipart form.
const maxUploadMemory = 8 << 20 // 8 MB

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services     *service.Service
	log          *logger.Logger
	flash        flash.Store
	mediaRoot    string
	corsOrigins  []string
	secureCookie bool
}

// Option tweaks a Handler at construction time.
type Option func(*Handler)

// WithFlash replaces the default cookie-backed notice store.
func WithFlash(s flash.Store) Option {
	return func(h *Handler) { h.flash = s }
}

// WithMediaRoot serves uploaded files from dir under /media/.
func WithMediaRoot(dir string) Option {
	return func(h *Handler) { h.mediaRoot = dir }
}

// WithCORS enables the CORS middleware for the given origins.
func WithCORS(origins []string) Option {
	return func(h *Handler) { h.corsOrigins = origins }
}

// WithSecureCookie marks the token cookie as Secure.
func WithSecureCookie(secure bool) Option {
	return func(h *Handler) { h.secureCookie = secure }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log}
	for _, opt := range opts {
		opt(h)
	}
	if h.flash == nil {
		h.flash = flash.NewCookieStore(h.secureCookie)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxUploadMemory
	router.Use(gin.Recovery(), h.accessLog)
	if len(h.corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     h.corsOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.mediaRoot != "" {
		router.Static("/media", h.mediaRoot)
	}

	site := router.Group("/", h.actorMiddleware)
	{
		h.registerPostRoutes(site)
		h.registerAccountRoutes(site)
		site.GET("/about/", h.about)
		site.GET("/ws/feed", h.wsFeed)
	}

	return router
}

func (h *Handler) registerPostRoutes(r *gin.RouterGroup) {
	r.GET("/", h.home)
	r.GET("/user/:username", h.userPosts)

	post := r.Group("/post")
	{
		post.GET("/new/", h.createForm)
		post.POST("/new/", h.createPost)
		post.GET("/:id/", h.postDetail)
		post.GET("/:id/update/", h.updateForm)
		post.POST("/:id/update/", h.updatePost)
		post.GET("/:id/delete/", h.deleteConfirm)
		post.POST("/:id/delete/", h.deletePost)
	}
}

func (h *Handler) registerAccountRoutes(r *gin.RouterGroup) {
	r.GET("/register/", h.registerForm)
	r.POST("/register/", h.register)
	r.GET("/login/", h.loginForm)
	r.POST("/login/", h.login)
	r.GET("/logout/", h.logout)
	r.POST("/logout/", h.logout)
	r.GET("/profile/", h.profile)
	r.POST("/profile/", h.updateProfile)
}
