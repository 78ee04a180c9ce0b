package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/db"
	"github.com/inkwell-blog/inkwell/internal/listing"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/pkg/config"
	"github.com/inkwell-blog/inkwell/pkg/logging"
)

// UserHandler serves the user endpoints
type UserHandler struct {
	users  *db.UserRepository
	cfg    *config.AuthConfig
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *db.UserRepository, cfg *config.AuthConfig) *UserHandler {
	return &UserHandler{
		users:  users,
		cfg:    cfg,
		logger: logging.GetLogger().With(zap.String("component", "users")),
	}
}

// bindJSON binds and validates a JSON body, folding validation failures into
// the client-facing message format.
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return BadRequest(FoldValidationErrors(err))
	}
	return nil
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// Register creates a new user account
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	existing, err := h.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.Error(err)
		return
	}
	if existing != nil {
		c.Error(Forbidden("user already exists"))
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		c.Error(err)
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
		Role:     models.RoleGuest,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("User registered", zap.String("username", user.Username))
	Respond(c, http.StatusCreated, "user created", user)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user by username or email and issues a token
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.users.GetByUsernameOrEmail(c.Request.Context(), req.Username)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(NotFound("user not found"))
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		c.Error(Forbidden("wrong password"))
		return
	}

	user.LastLogin = time.Now().UTC()
	if err := h.users.Update(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role, []byte(h.cfg.JWTSecret), h.cfg.TokenExpireTime)
	if err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("User logged in", zap.String("username", user.Username))
	Respond(c, http.StatusOK, "login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword updates the caller's password after verifying the old one
func (h *UserHandler) ChangePassword(c *gin.Context) {
	claims := Claims(c)

	var req changePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(NotFound("user not found"))
		return
	}
	if !auth.CheckPassword(user.Password, req.OldPassword) {
		c.Error(Unauthorized("wrong password"))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword, h.cfg.BcryptCost)
	if err != nil {
		c.Error(err)
		return
	}
	user.Password = hash
	if err := h.users.Update(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "password changed", nil)
}

type updateInfoRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
	Bio    *string `json:"bio"`
	Phone  *string `json:"phone"`
}

// UpdateInfo partially updates the caller's profile fields
func (h *UserHandler) UpdateInfo(c *gin.Context) {
	claims := Claims(c)

	var req updateInfoRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(NotFound("user not found"))
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := h.users.Update(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "user updated", user)
}

type updateListFieldsRequest struct {
	Field  string   `json:"field" binding:"required"`
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

// UpdateListFields adds or removes ids on one of the caller's relationship
// lists (interests, follows, savedPosts, likedPosts, likedComments).
func (h *UserHandler) UpdateListFields(c *gin.Context) {
	claims := Claims(c)

	var req updateListFieldsRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if !models.IsListField(req.Field) {
		c.Error(BadRequest("unknown list field"))
		return
	}
	for _, id := range append(append([]string{}, req.Add...), req.Remove...) {
		if !models.IsValidObjectID(id) {
			c.Error(BadRequest("invalid query id"))
			return
		}
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(NotFound("user not found"))
		return
	}

	if len(req.Add) > 0 {
		if err := h.users.AddListItems(c.Request.Context(), user, req.Field, req.Add); err != nil {
			c.Error(err)
			return
		}
	}
	if len(req.Remove) > 0 {
		if err := h.users.RemoveListItems(c.Request.Context(), user, req.Field, req.Remove); err != nil {
			c.Error(err)
			return
		}
	}

	Respond(c, http.StatusOK, "user updated", nil)
}

// Get returns a public user profile
func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("userId")
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id, "Interests")
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(NotFound("user not found"))
		return
	}

	Respond(c, http.StatusOK, "user found", user)
}

// ListFeatured returns a page of featured users
func (h *UserHandler) ListFeatured(c *gin.Context) {
	pr := listing.NormalizePage(c.Query("page"), c.Query("limit"))

	users, res, err := h.users.ListFeatured(c.Request.Context(), pr)
	if err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "users found", listing.NewListPayload(users, len(users), res))
}

// List returns a filtered, paginated user list (staff only)
func (h *UserHandler) List(c *gin.Context) {
	f, err := listing.BuildFilter(c.Request.URL.Query(), listing.ResourceUser, "")
	if err != nil {
		c.Error(BadRequest(err.Error()))
		return
	}
	s := listing.ResolveSort(c.Query("order"), listing.ResourceUser.DefaultSort())
	pr := listing.NormalizePage(c.Query("page"), c.Query("limit"))

	users, res, err := h.users.List(c.Request.Context(), f, s, pr)
	if err != nil {
		c.Error(err)
		return
	}

	Respond(c, http.StatusOK, "users found", listing.NewListPayload(users, len(users), res))
}

// UpdateRole sets a user's role (admin only)
func (h *UserHandler) UpdateRole(c *gin.Context) {
	role := c.Param("role")
	id := c.Param("userId")

	if !models.IsValidRole(role) {
		c.Error(BadRequest("invalid role"))
		return
	}
	if !models.IsValidObjectID(id) {
		c.Error(BadRequest("invalid query id"))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		c.Error(NotFound("user not found"))
		return
	}

	user.Role = role
	if err := h.users.Update(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("User role updated", zap.String("userId", user.ID), zap.String("role", role))
	Respond(c, http.StatusOK, "role updated", user)
}
