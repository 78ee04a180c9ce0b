// Package api exposes the REST surface: routing, middleware, the response
// envelope, and one handler per resource.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-blog/inkwell/internal/cache"
	"github.com/inkwell-blog/inkwell/internal/db"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/internal/storage"
	"github.com/inkwell-blog/inkwell/pkg/config"
	"github.com/inkwell-blog/inkwell/pkg/logging"
)

// Router sets up API routes
type Router struct {
	db     *db.DB
	cache  *cache.Cache
	store  *storage.Store
	cfg    *config.Config
	logger *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, store *storage.Store, cfg *config.Config) *Router {
	return &Router{
		db:     database,
		cache:  redisCache,
		store:  store,
		cfg:    cfg,
		logger: logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(gin.Recovery(), ErrorHandler(), RequestLogger())

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	repo := db.NewRepository(r.db.DB)
	users := db.NewUserRepository(repo)
	posts := db.NewPostRepository(repo)
	comments := db.NewCommentRepository(repo)
	tags := db.NewTagRepository(repo)
	categories := db.NewCategoryRepository(repo)

	userHandler := NewUserHandler(users, &r.cfg.Auth)
	postHandler := NewPostHandler(posts, tags, categories)
	commentHandler := NewCommentHandler(comments, posts)
	tagHandler := NewTagHandler(tags)
	categoryHandler := NewCategoryHandler(categories)
	uploadHandler := NewUploadHandler(r.store)

	secret := []byte(r.cfg.Auth.JWTSecret)
	authed := Authenticate(secret)
	cached := CacheResponse(r.cache, r.cfg.Redis.CacheTTL)
	invalidate := InvalidateCache(r.cache)

	api := engine.Group("/api")

	userRoutes := api.Group("/users")
	{
		userRoutes.POST("/register", userHandler.Register)
		userRoutes.POST("/login", userHandler.Login)
		userRoutes.PUT("/change-password", authed, userHandler.ChangePassword)
		userRoutes.PUT("/update-info", authed, userHandler.UpdateInfo)
		userRoutes.PUT("/update-list-fields", authed, userHandler.UpdateListFields)
		userRoutes.GET("/all/featured", cached, userHandler.ListFeatured)
		userRoutes.GET("/:userId", userHandler.Get)
		userRoutes.GET("/", authed, RequireRoles(models.RoleAdmin, models.RoleStaff), userHandler.List)
		userRoutes.PUT("/:role/:userId", authed, RequireRoles(models.RoleAdmin), userHandler.UpdateRole)
	}

	postRoutes := api.Group("/posts")
	{
		postRoutes.GET("/", cached, postHandler.List)
		postRoutes.GET("/:postId", postHandler.Get)
		postRoutes.POST("/", authed, invalidate, postHandler.Create)
		postRoutes.PUT("/:postId", authed, invalidate, postHandler.Update)
		postRoutes.DELETE("/:postId", authed, invalidate, postHandler.Delete)
		postRoutes.POST("/like/:postId", authed, postHandler.Like)
		postRoutes.POST("/unlike/:postId", authed, postHandler.Unlike)
	}

	commentRoutes := api.Group("/comments")
	{
		commentRoutes.GET("/all/:postId", commentHandler.ListForPost)
		commentRoutes.GET("/:commentId", commentHandler.Get)
		commentRoutes.POST("/", authed, commentHandler.Create)
		commentRoutes.PUT("/:commentId", authed, commentHandler.Update)
		commentRoutes.DELETE("/:commentId", authed, commentHandler.Delete)
		commentRoutes.POST("/like/:commentId", authed, commentHandler.Like)
		commentRoutes.POST("/unlike/:commentId", authed, commentHandler.Unlike)
	}

	tagRoutes := api.Group("/tags")
	{
		tagRoutes.GET("/", cached, tagHandler.List)
		tagRoutes.GET("/:tagId", tagHandler.Get)
		tagRoutes.POST("/", authed, invalidate, tagHandler.Create)
		tagRoutes.PUT("/:tagId", authed, RequireRoles(models.RoleAdmin, models.RoleStaff), invalidate, tagHandler.Update)
		tagRoutes.DELETE("/:tagId", authed, RequireRoles(models.RoleAdmin, models.RoleStaff), invalidate, tagHandler.Delete)
	}

	categoryRoutes := api.Group("/categories")
	{
		categoryRoutes.GET("/", cached, categoryHandler.List)
		categoryRoutes.GET("/:categoryId", categoryHandler.Get)
		categoryRoutes.POST("/", authed, RequireRoles(models.RoleAdmin, models.RoleStaff), invalidate, categoryHandler.Create)
		categoryRoutes.PUT("/:categoryId", authed, RequireRoles(models.RoleAdmin, models.RoleStaff), invalidate, categoryHandler.Update)
		categoryRoutes.DELETE("/:categoryId", authed, RequireRoles(models.RoleAdmin, models.RoleStaff), invalidate, categoryHandler.Delete)
	}

	api.POST("/upload", authed, uploadHandler.Upload)
	api.DELETE("/upload/*object", authed, uploadHandler.Delete)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "OK"
	if err := r.db.Health(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		dbStatus = err.Error()
	}

	cacheStatus := "OK"
	if err := r.cache.Health(c.Request.Context()); err != nil {
		if err == cache.ErrCacheDisabled {
			cacheStatus = "disabled"
		} else {
			cacheStatus = err.Error()
		}
	}

	c.JSON(status, gin.H{
		"status":  dbStatus,
		"cache":   cacheStatus,
		"service": "inkwell-api",
	})
}
