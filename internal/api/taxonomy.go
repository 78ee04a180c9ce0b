package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-blog/inkwell/internal/db"
	"github.com/inkwell-blog/inkwell/internal/listing"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/pkg/logging"
)

type nameRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// TagHandler serves the tag endpoints
type TagHandler struct {
	tags   *db.TagRepository
	logger *zap.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tags *db.TagRepository) *TagHandler {
	return &TagHandler{
		tags:   tags,
		logger: logging.GetLogger().With(zap.String("component", "tags")),
	}
}

// List returns a filtered, paginated tag list
func (h *TagHandler) List(c *gin.Context) {
	f, err := listing.BuildFilter(c.Request.URL.Query(), listing.ResourceTag, "")
	if err != nil {
		c.Error(BadRequest(err.Error()))
		return
	}
	s := listing.ResolveSort(c.Query("order"), listing.ResourceTag.DefaultSort())
	pr := listing.NormalizePage(c.Query("page"), c.Query("limit"))

	tags, res, err := h.tags.List(c.Request.Context(), f, s, pr)
	if err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "tags found", listing.NewListPayload(tags, len(tags), res))
}

// Get returns a single tag
func (h *TagHandler) Get(c *gin.Context) {
	id := c.Param("tagId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	tag, err := h.tags.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if tag == nil {
		c.Error(NotFound("tag not found"))
		return
	}

	Respond(c, http.StatusOK, "tag found", tag)
}

// Create creates a tag with a unique name
func (h *TagHandler) Create(c *gin.Context) {
	var req nameRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	existing, err := h.tags.GetByName(c.Request.Context(), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	if existing != nil {
		c.Error(BadRequest("tag already exists"))
		return
	}

	tag := &models.Tag{Name: req.Name}
	if err := h.tags.Create(c.Request.Context(), tag); err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("Tag created", zap.String("name", tag.Name))
	Respond(c, http.StatusCreated, "tag created", tag)
}

// Update renames a tag
func (h *TagHandler) Update(c *gin.Context) {
	id := c.Param("tagId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	var req nameRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	tag, err := h.tags.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if tag == nil {
		c.Error(NotFound("tag not found"))
		return
	}

	existing, err := h.tags.GetByName(c.Request.Context(), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	if existing != nil && existing.ID != tag.ID {
		c.Error(BadRequest("tag already exists"))
		return
	}

	tag.Name = req.Name
	if err := h.tags.Update(c.Request.Context(), tag); err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "tag updated", tag)
}

// Delete removes a tag
func (h *TagHandler) Delete(c *gin.Context) {
	id := c.Param("tagId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	tag, err := h.tags.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if tag == nil {
		c.Error(NotFound("tag not found"))
		return
	}

	if err := h.tags.Delete(c.Request.Context(), tag); err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("Tag deleted", zap.String("name", tag.Name))
	Respond(c, http.StatusOK, "tag deleted", nil)
}

// CategoryHandler serves the category endpoints
type CategoryHandler struct {
	categories *db.CategoryRepository
	logger     *zap.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories *db.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logging.GetLogger().With(zap.String("component", "categories")),
	}
}

// List returns a filtered, paginated category list
func (h *CategoryHandler) List(c *gin.Context) {
	f, err := listing.BuildFilter(c.Request.URL.Query(), listing.ResourceCategory, "")
	if err != nil {
		c.Error(BadRequest(err.Error()))
		return
	}
	s := listing.ResolveSort(c.Query("order"), listing.ResourceCategory.DefaultSort())
	pr := listing.NormalizePage(c.Query("page"), c.Query("limit"))

	categories, res, err := h.categories.List(c.Request.Context(), f, s, pr)
	if err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "categories found", listing.NewListPayload(categories, len(categories), res))
}

// Get returns a single category
func (h *CategoryHandler) Get(c *gin.Context) {
	id := c.Param("categoryId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if category == nil {
		c.Error(NotFound("category not found"))
		return
	}

	Respond(c, http.StatusOK, "category found", category)
}

// Create creates a category with a unique name
func (h *CategoryHandler) Create(c *gin.Context) {
	var req nameRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	existing, err := h.categories.GetByName(c.Request.Context(), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	if existing != nil {
		c.Error(BadRequest("category already exists"))
		return
	}

	category := &models.Category{Name: req.Name}
	if err := h.categories.Create(c.Request.Context(), category); err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("Category created", zap.String("name", category.Name))
	Respond(c, http.StatusCreated, "category created", category)
}

// Update renames a category
func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("categoryId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	var req nameRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if category == nil {
		c.Error(NotFound("category not found"))
		return
	}

	existing, err := h.categories.GetByName(c.Request.Context(), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	if existing != nil && existing.ID != category.ID {
		c.Error(BadRequest("category already exists"))
		return
	}

	category.Name = req.Name
	if err := h.categories.Update(c.Request.Context(), category); err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "category updated", category)
}

// Delete removes a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("categoryId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if category == nil {
		c.Error(NotFound("category not found"))
		return
	}

	if err := h.categories.Delete(c.Request.Context(), category); err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("Category deleted", zap.String("name", category.Name))
	Respond(c, http.StatusOK, "category deleted", nil)
}
