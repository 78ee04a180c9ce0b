package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-blog/inkwell/internal/counter"
	"github.com/inkwell-blog/inkwell/internal/listing"
	"github.com/inkwell-blog/inkwell/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying gorm handle
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// AdjustCounter applies a single clamped increment or decrement to the named
// counter field of an entity and persists it before returning. Read, adjust
// and write are separate steps without locking; concurrent adjustments of the
// same counter can lose updates.
func (r *Repository) AdjustCounter(ctx context.Context, entity counter.Mutable, field string, d counter.Direction) (int64, error) {
	v, err := counter.Adjust(entity, field, d)
	if err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error; err != nil {
		return 0, err
	}
	return v, nil
}

// listEntities runs the shared list protocol for one entity type: the count
// query and the page query execute concurrently over the same filter scope.
func listEntities[T any](ctx context.Context, db *gorm.DB, f listing.Filter, s listing.Sort, pr listing.PageRequest, preloads ...string) ([]*T, listing.Result, error) {
	order, err := s.OrderClause()
	if err != nil {
		return nil, listing.Result{}, err
	}
	scope := f.Scope()

	var items []*T
	res, err := listing.Run(ctx, pr,
		func(ctx context.Context) (int64, error) {
			var n int64
			err := db.WithContext(ctx).Model(new(T)).Scopes(scope).Count(&n).Error
			return n, err
		},
		func(ctx context.Context, limit, offset int) error {
			q := db.WithContext(ctx).Scopes(scope)
			for _, p := range preloads {
				q = q.Preload(p)
			}
			return q.Order(order).Limit(limit).Offset(offset).Find(&items).Error
		},
	)
	if err != nil {
		return nil, listing.Result{}, err
	}
	if items == nil {
		items = []*T{}
	}
	return items, res, nil
}

// getByID fetches a single entity by primary key, nil when absent.
func getByID[T any](ctx context.Context, db *gorm.DB, id string, preloads ...string) (*T, error) {
	var entity T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string, preloads ...string) (*models.User, error) {
	return getByID[models.User](ctx, r.db, id, preloads...)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsernameOrEmail retrieves a user matching either identifier
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string, preloads ...string) (*models.User, error) {
	q := r.db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var user models.User
	if err := q.Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update persists changed scalar fields of a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

// List returns a filtered, sorted page of users
func (r *UserRepository) List(ctx context.Context, f listing.Filter, s listing.Sort, pr listing.PageRequest) ([]*models.User, listing.Result, error) {
	return listEntities[models.User](ctx, r.db, f, s, pr)
}

// ListFeatured returns a page of featured users
func (r *UserRepository) ListFeatured(ctx context.Context, pr listing.PageRequest) ([]*models.User, listing.Result, error) {
	f := listing.Filter{Mode: listing.FilterMatch, Match: map[string]string{"featured": "true"}}
	return listEntities[models.User](ctx, r.db, f, listing.Sort{Field: "username"}, pr)
}

// listFieldAssociations maps API list-field names to gorm associations.
var listFieldAssociations = map[string]string{
	"interests":     "Interests",
	"follows":       "Follows",
	"savedPosts":    "SavedPosts",
	"likedPosts":    "LikedPosts",
	"likedComments": "LikedComments",
}

// listFieldValues builds association targets carrying only primary keys.
func listFieldValues(field string, ids []string) (interface{}, error) {
	switch field {
	case "interests":
		items := make([]models.Tag, len(ids))
		for i, id := range ids {
			items[i] = models.Tag{ID: id}
		}
		return items, nil
	case "follows":
		items := make([]models.User, len(ids))
		for i, id := range ids {
			items[i] = models.User{ID: id}
		}
		return items, nil
	case "savedPosts", "likedPosts":
		items := make([]models.Post, len(ids))
		for i, id := range ids {
			items[i] = models.Post{ID: id}
		}
		return items, nil
	case "likedComments":
		items := make([]models.Comment, len(ids))
		for i, id := range ids {
			items[i] = models.Comment{ID: id}
		}
		return items, nil
	}
	return nil, fmt.Errorf("unknown list field: %s", field)
}

// AddListItems appends entries to one of the user's relationship lists.
func (r *UserRepository) AddListItems(ctx context.Context, user *models.User, field string, ids []string) error {
	assoc, ok := listFieldAssociations[field]
	if !ok {
		return fmt.Errorf("unknown list field: %s", field)
	}
	values, err := listFieldValues(field, ids)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(user).Omit(assoc + ".*").Association(assoc).Append(values)
}

// RemoveListItems removes entries from one of the user's relationship lists.
func (r *UserRepository) RemoveListItems(ctx context.Context, user *models.User, field string, ids []string) error {
	assoc, ok := listFieldAssociations[field]
	if !ok {
		return fmt.Errorf("unknown list field: %s", field)
	}
	values, err := listFieldValues(field, ids)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(user).Association(assoc).Delete(values)
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id string, preloads ...string) (*models.Post, error) {
	return getByID[models.Post](ctx, r.db, id, preloads...)
}

// Create creates a new post. Tag rows themselves are left untouched; only
// the join entries are written.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Tags.*").Create(post).Error
}

// Update persists changed scalar fields of a post
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error
}

// ReplaceTags replaces the post's tag references
func (r *PostRepository) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(post).Omit("Tags.*").Association("Tags").Replace(tags)
}

// Delete removes a post and its tag references
func (r *PostRepository) Delete(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Model(post).Association("Tags").Clear(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(post).Error
}

// List returns a filtered, sorted page of posts
func (r *PostRepository) List(ctx context.Context, f listing.Filter, s listing.Sort, pr listing.PageRequest) ([]*models.Post, listing.Result, error) {
	return listEntities[models.Post](ctx, r.db, f, s, pr, "Author", "Tags", "Category")
}

// CommentRepository provides comment-related database operations
type CommentRepository struct {
	*Repository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(repo *Repository) *CommentRepository {
	return &CommentRepository{Repository: repo}
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id string, preloads ...string) (*models.Comment, error) {
	return getByID[models.Comment](ctx, r.db, id, preloads...)
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// Update persists changed scalar fields of a comment
func (r *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Delete(comment).Error
}

// DeleteChildren removes all direct replies of a comment
func (r *CommentRepository) DeleteChildren(ctx context.Context, parentID string) error {
	return r.db.WithContext(ctx).Where("parent_comment_id = ?", parentID).Delete(&models.Comment{}).Error
}

// List returns a filtered, sorted page of comments
func (r *CommentRepository) List(ctx context.Context, f listing.Filter, s listing.Sort, pr listing.PageRequest) ([]*models.Comment, listing.Result, error) {
	return listEntities[models.Comment](ctx, r.db, f, s, pr, "Author")
}

// TagRepository provides tag-related database operations
type TagRepository struct {
	*Repository
}

// NewTagRepository creates a new tag repository
func NewTagRepository(repo *Repository) *TagRepository {
	return &TagRepository{Repository: repo}
}

// GetByID retrieves a tag by ID
func (r *TagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	return getByID[models.Tag](ctx, r.db, id)
}

// GetByName retrieves a tag by name
func (r *TagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// Create creates a new tag
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// Update persists changed fields of a tag
func (r *TagRepository) Update(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(tag).Error
}

// Delete removes a tag
func (r *TagRepository) Delete(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Delete(tag).Error
}

// List returns a filtered, sorted page of tags
func (r *TagRepository) List(ctx context.Context, f listing.Filter, s listing.Sort, pr listing.PageRequest) ([]*models.Tag, listing.Result, error) {
	return listEntities[models.Tag](ctx, r.db, f, s, pr)
}

// CategoryRepository provides category-related database operations
type CategoryRepository struct {
	*Repository
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(repo *Repository) *CategoryRepository {
	return &CategoryRepository{Repository: repo}
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return getByID[models.Category](ctx, r.db, id)
}

// GetByName retrieves a category by name
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update persists changed fields of a category
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Delete(category).Error
}

// List returns a filtered, sorted page of categories
func (r *CategoryRepository) List(ctx context.Context, f listing.Filter, s listing.Sort, pr listing.PageRequest) ([]*models.Category, listing.Result, error) {
	return listEntities[models.Category](ctx, r.db, f, s, pr)
}
