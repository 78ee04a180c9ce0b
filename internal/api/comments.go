package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-blog/inkwell/internal/counter"
	"github.com/inkwell-blog/inkwell/internal/db"
	"github.com/inkwell-blog/inkwell/internal/listing"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/pkg/logging"
)

// CommentHandler serves the comment endpoints
type CommentHandler struct {
	comments *db.CommentRepository
	posts    *db.PostRepository
	logger   *zap.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *db.CommentRepository, posts *db.PostRepository) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		posts:    posts,
		logger:   logging.GetLogger().With(zap.String("component", "comments")),
	}
}

// ListForPost returns a filtered, paginated comment list for one post
func (h *CommentHandler) ListForPost(c *gin.Context) {
	postID := c.Param("postId")
	if !models.IsValidObjectID(postID) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	// Only searches are scoped to the post in the path; plain filters come
	// straight from the query parameters, so few-parameter requests list
	// comments across all posts.
	f, err := listing.BuildFilter(c.Request.URL.Query(), listing.ResourceComment, postID)
	if err != nil {
		c.Error(BadRequest(err.Error()))
		return
	}
	s := listing.ResolveSort(c.Query("order"), listing.ResourceComment.DefaultSort())
	pr := listing.NormalizePage(c.Query("page"), c.Query("limit"))

	comments, res, err := h.comments.List(c.Request.Context(), f, s, pr)
	if err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "comments found", listing.NewListPayload(comments, len(comments), res))
}

// Get returns a single comment
func (h *CommentHandler) Get(c *gin.Context) {
	id := c.Param("commentId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	comment, err := h.comments.GetByID(c.Request.Context(), id, "Author")
	if err != nil {
		c.Error(err)
		return
	}
	if comment == nil {
		c.Error(NotFound("comment not found"))
		return
	}

	Respond(c, http.StatusOK, "comment found", comment)
}

type createCommentRequest struct {
	PostID          string `json:"postId" binding:"required"`
	Content         string `json:"content" binding:"required"`
	ParentCommentID string `json:"parentCommentId"`
}

// Create creates a comment and bumps the post's comment count
func (h *CommentHandler) Create(c *gin.Context) {
	claims := Claims(c)

	var req createCommentRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if !models.IsValidObjectID(req.PostID) {
		c.Error(BadRequest("invalid query id"))
		return
	}
	if req.ParentCommentID != "" && !models.IsValidObjectID(req.ParentCommentID) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), req.PostID)
	if err != nil {
		c.Error(err)
		return
	}
	if post == nil {
		c.Error(NotFound("post not found"))
		return
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		AuthorID: claims.UserID,
		Content:  req.Content,
	}
	if req.ParentCommentID != "" {
		comment.ParentCommentID = sql.NullString{String: req.ParentCommentID, Valid: true}
	}

	if err := h.comments.Create(c.Request.Context(), comment); err != nil {
		c.Error(err)
		return
	}

	if _, err := h.comments.AdjustCounter(c.Request.Context(), post, "comments", counter.Increment); err != nil {
		h.logger.Warn("Failed to bump comment count", zap.String("postId", post.ID), zap.Error(err))
	}

	h.logger.Info("Comment created", zap.String("commentId", comment.ID), zap.String("postId", post.ID))
	Respond(c, http.StatusCreated, "comment created", comment)
}

// loadOwnComment fetches the comment and enforces the author guard.
func (h *CommentHandler) loadOwnComment(c *gin.Context) *models.Comment {
	id := c.Param("commentId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return nil
	}

	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return nil
	}
	if comment == nil {
		c.Error(NotFound("comment not found"))
		return nil
	}
	if comment.AuthorID != Claims(c).UserID {
		c.Error(Unauthorized("not the author"))
		return nil
	}
	return comment
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Update rewrites the caller's own comment
func (h *CommentHandler) Update(c *gin.Context) {
	var req updateCommentRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	comment := h.loadOwnComment(c)
	if comment == nil {
		return
	}

	comment.Content = req.Content
	if err := h.comments.Update(c.Request.Context(), comment); err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "comment updated", comment)
}

// Delete removes the caller's own comment together with its direct replies.
// The post's comment count drops by exactly one regardless of how many
// replies went with it.
func (h *CommentHandler) Delete(c *gin.Context) {
	comment := h.loadOwnComment(c)
	if comment == nil {
		return
	}

	ctx := c.Request.Context()
	if err := h.comments.DeleteChildren(ctx, comment.ID); err != nil {
		c.Error(err)
		return
	}
	if err := h.comments.Delete(ctx, comment); err != nil {
		c.Error(err)
		return
	}

	post, err := h.posts.GetByID(ctx, comment.PostID)
	if err == nil && post != nil {
		if _, err := h.comments.AdjustCounter(ctx, post, "comments", counter.Decrement); err != nil {
			h.logger.Warn("Failed to drop comment count", zap.String("postId", post.ID), zap.Error(err))
		}
	}

	h.logger.Info("Comment deleted", zap.String("commentId", comment.ID))
	Respond(c, http.StatusOK, "comment deleted", nil)
}

// adjustLikes applies a clamped like mutation and responds with the new count.
func (h *CommentHandler) adjustLikes(c *gin.Context, d counter.Direction) {
	id := c.Param("commentId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if comment == nil {
		c.Error(NotFound("comment not found"))
		return
	}

	likes, err := h.comments.AdjustCounter(c.Request.Context(), comment, "likes", d)
	if err != nil {
		c.Error(err)
		return
	}

	message := "comment liked"
	if d == counter.Decrement {
		message = "comment unliked"
	}
	Respond(c, http.StatusOK, message, gin.H{
		"commentId": comment.ID,
		"likes":     likes,
	})
}

// Like increments the comment like counter
func (h *CommentHandler) Like(c *gin.Context) {
	h.adjustLikes(c, counter.Increment)
}

// Unlike decrements the comment like counter, never below zero
func (h *CommentHandler) Unlike(c *gin.Context) {
	h.adjustLikes(c, counter.Decrement)
}
