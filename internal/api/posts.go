package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-blog/inkwell/internal/counter"
	"github.com/inkwell-blog/inkwell/internal/db"
	"github.com/inkwell-blog/inkwell/internal/listing"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/pkg/logging"
)

// PostHandler serves the post endpoints
type PostHandler struct {
	posts      *db.PostRepository
	tags       *db.TagRepository
	categories *db.CategoryRepository
	logger     *zap.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(posts *db.PostRepository, tags *db.TagRepository, categories *db.CategoryRepository) *PostHandler {
	return &PostHandler{
		posts:      posts,
		tags:       tags,
		categories: categories,
		logger:     logging.GetLogger().With(zap.String("component", "posts")),
	}
}

// List returns a filtered, paginated post list. The post list payload is the
// only one carrying the page count.
func (h *PostHandler) List(c *gin.Context) {
	f, err := listing.BuildFilter(c.Request.URL.Query(), listing.ResourcePost, "")
	if err != nil {
		c.Error(BadRequest(err.Error()))
		return
	}
	s := listing.ResolveSort(c.Query("order"), listing.ResourcePost.DefaultSort())
	pr := listing.NormalizePage(c.Query("page"), c.Query("limit"))

	posts, res, err := h.posts.List(c.Request.Context(), f, s, pr)
	if err != nil {
		c.Error(err)
		return
	}

	payload := listing.NewListPayload(posts, len(posts), res)
	payload.PageCount = res.PageCount
	Respond(c, http.StatusOK, "posts found", payload)
}

// Get returns a single post and counts the view
func (h *PostHandler) Get(c *gin.Context) {
	id := c.Param("postId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), id, "Author", "Tags", "Category")
	if err != nil {
		c.Error(err)
		return
	}
	if post == nil {
		c.Error(NotFound("post not found"))
		return
	}

	if _, err := h.posts.AdjustCounter(c.Request.Context(), post, "views", counter.Increment); err != nil {
		h.logger.Warn("Failed to count view", zap.String("postId", post.ID), zap.Error(err))
	}

	Respond(c, http.StatusOK, "post found", post)
}

type createPostRequest struct {
	Title      string   `json:"title" binding:"required,max=255"`
	Content    string   `json:"content" binding:"required"`
	CategoryID string   `json:"categoryId"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status"`
	CoverImage string   `json:"coverImage"`
	Summary    string   `json:"summary"`
}

// Create creates a post for the authenticated user and bumps the post counts
// of its category and tags.
func (h *PostHandler) Create(c *gin.Context) {
	claims := Claims(c)

	var req createPostRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if req.Status != "" && !models.IsValidStatus(req.Status) {
		c.Error(BadRequest("invalid status"))
		return
	}
	if req.CategoryID != "" && !models.IsValidObjectID(req.CategoryID) {
		c.Error(BadRequest("invalid query id"))
		return
	}
	for _, id := range req.Tags {
		if !models.IsValidObjectID(id) {
			c.Error(BadRequest("invalid query id"))
			return
		}
	}

	post := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   claims.UserID,
		Status:     req.Status,
		CoverImage: req.CoverImage,
		Summary:    req.Summary,
	}
	if post.Status == "" {
		post.Status = models.StatusPublished
	}
	if req.CategoryID != "" {
		post.CategoryID = sql.NullString{String: req.CategoryID, Valid: true}
	}
	for _, id := range req.Tags {
		post.Tags = append(post.Tags, models.Tag{ID: id})
	}

	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		c.Error(err)
		return
	}

	// Count adjustments are separate steps after the post save; a crash in
	// between leaves the counts stale.
	ctx := c.Request.Context()
	if req.CategoryID != "" {
		if category, err := h.categories.GetByID(ctx, req.CategoryID); err == nil && category != nil {
			if _, err := h.categories.AdjustCounter(ctx, category, "postCount", counter.Increment); err != nil {
				h.logger.Warn("Failed to bump category count", zap.Error(err))
			}
		}
	}
	for _, id := range req.Tags {
		if tag, err := h.tags.GetByID(ctx, id); err == nil && tag != nil {
			if _, err := h.tags.AdjustCounter(ctx, tag, "postCount", counter.Increment); err != nil {
				h.logger.Warn("Failed to bump tag count", zap.Error(err))
			}
		}
	}

	h.logger.Info("Post created", zap.String("postId", post.ID), zap.String("authorId", post.AuthorID))
	Respond(c, http.StatusCreated, "post created", post)
}

type updatePostRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Status     *string `json:"status"`
	CoverImage *string `json:"coverImage"`
	Summary    *string `json:"summary"`
	Featured   *bool   `json:"featured"`
}

// loadOwnPost fetches the post and enforces the author guard.
func (h *PostHandler) loadOwnPost(c *gin.Context, preloads ...string) *models.Post {
	id := c.Param("postId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return nil
	}

	post, err := h.posts.GetByID(c.Request.Context(), id, preloads...)
	if err != nil {
		c.Error(err)
		return nil
	}
	if post == nil {
		c.Error(NotFound("post not found"))
		return nil
	}
	if post.AuthorID != Claims(c).UserID {
		c.Error(Unauthorized("not the author"))
		return nil
	}
	return post
}

// Update partially updates the caller's own post
func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if req.Status != nil && !models.IsValidStatus(*req.Status) {
		c.Error(BadRequest("invalid status"))
		return
	}

	post := h.loadOwnPost(c)
	if post == nil {
		return
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	if req.CoverImage != nil {
		post.CoverImage = *req.CoverImage
	}
	if req.Summary != nil {
		post.Summary = *req.Summary
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}
	post.LastUpdateDate = time.Now().UTC()

	if err := h.posts.Update(c.Request.Context(), post); err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "post updated", post)
}

// Delete removes the caller's own post and walks back the category and tag
// counts.
func (h *PostHandler) Delete(c *gin.Context) {
	post := h.loadOwnPost(c, "Tags")
	if post == nil {
		return
	}

	ctx := c.Request.Context()
	if post.CategoryID.Valid {
		if category, err := h.categories.GetByID(ctx, post.CategoryID.String); err == nil && category != nil {
			if _, err := h.categories.AdjustCounter(ctx, category, "postCount", counter.Decrement); err != nil {
				h.logger.Warn("Failed to drop category count", zap.Error(err))
			}
		}
	}
	for i := range post.Tags {
		if _, err := h.tags.AdjustCounter(ctx, &post.Tags[i], "postCount", counter.Decrement); err != nil {
			h.logger.Warn("Failed to drop tag count", zap.Error(err))
		}
	}

	if err := h.posts.Delete(ctx, post); err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("Post deleted", zap.String("postId", post.ID))
	Respond(c, http.StatusOK, "post deleted", nil)
}

// adjustLikes applies a clamped like mutation and responds with the new count.
func (h *PostHandler) adjustLikes(c *gin.Context, d counter.Direction) {
	id := c.Param("postId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if post == nil {
		c.Error(NotFound("post not found"))
		return
	}

	likes, err := h.posts.AdjustCounter(c.Request.Context(), post, "likes", d)
	if err != nil {
		c.Error(err)
		return
	}

	message := "post liked"
	if d == counter.Decrement {
		message = "post unliked"
	}
	Respond(c, http.StatusOK, message, gin.H{
		"postId": post.ID,
		"likes":  likes,
	})
}

// Like increments the post like counter
func (h *PostHandler) Like(c *gin.Context) {
	h.adjustLikes(c, counter.Increment)
}

// Unlike decrements the post like counter, never below zero
func (h *PostHandler) Unlike(c *gin.Context) {
	h.adjustLikes(c, counter.Decrement)
}
