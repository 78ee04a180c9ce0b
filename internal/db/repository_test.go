package db

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwell-blog/inkwell/internal/counter"
	"github.com/inkwell-blog/inkwell/internal/listing"
	"github.com/inkwell-blog/inkwell/internal/models"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func tagRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "post_count", "created_at", "updated_at"})
}

func TestTagRepositoryGetByID(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewTagRepository(NewRepository(gdb))

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE id = .+`).
		WithArgs("64b1f77bcf86cd7994390001", 1).
		WillReturnRows(tagRows().AddRow("64b1f77bcf86cd7994390001", "golang", int64(3), now, now))

	tag, err := repo.GetByID(context.Background(), "64b1f77bcf86cd7994390001")
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, "golang", tag.Name)
	assert.Equal(t, int64(3), tag.PostCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepositoryGetByIDNotFound(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewTagRepository(NewRepository(gdb))

	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE id = .+`).
		WillReturnRows(tagRows())

	tag, err := repo.GetByID(context.Background(), "64b1f77bcf86cd7994390099")
	require.NoError(t, err)
	assert.Nil(t, tag)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepositoryGetByName(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewTagRepository(NewRepository(gdb))

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE name = .+`).
		WithArgs("databases", 1).
		WillReturnRows(tagRows().AddRow("64b1f77bcf86cd7994390002", "databases", int64(0), now, now))

	tag, err := repo.GetByName(context.Background(), "databases")
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, "64b1f77bcf86cd7994390002", tag.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByUsernameOrEmail(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepository(NewRepository(gdb))

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = .+ OR email = .+`).
		WithArgs("alice@example.com", "alice@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "role"}).
			AddRow("64b1f77bcf86cd7994390010", "alice", "alice@example.com", models.RoleStaff))

	user, err := repo.GetByUsernameOrEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleStaff, user.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepositoryList(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewTagRepository(NewRepository(gdb))

	// Count and page queries run concurrently, so arrival order is not fixed.
	mock.MatchExpectationsInOrder(false)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT \* FROM "tags" ORDER BY name ASC LIMIT .+`).
		WillReturnRows(tagRows().
			AddRow("64b1f77bcf86cd7994390003", "testing", int64(1), now, now).
			AddRow("64b1f77bcf86cd7994390004", "tooling", int64(2), now, now))

	f := listing.Filter{Mode: listing.FilterAll}
	s := listing.ResolveSort("", "name")

	tags, res, err := repo.List(context.Background(), f, s, listing.PageRequest{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, int64(7), res.Total)
	assert.Equal(t, 2, res.PageCount)
	assert.False(t, res.HasMore)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepositoryListSearch(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewTagRepository(NewRepository(gdb))

	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tags" WHERE .*name ILIKE .+`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE .*name ILIKE .+`).
		WillReturnRows(tagRows())

	f, err := listing.BuildFilter(url.Values{"search": {"go"}, "a": {"1"}, "b": {"2"}}, listing.ResourceTag, "")
	require.NoError(t, err)
	require.Equal(t, listing.FilterSearch, f.Mode)

	tags, res, err := repo.List(context.Background(), f, listing.Sort{Field: "name"}, listing.PageRequest{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.Equal(t, int64(0), res.Total)
	assert.False(t, res.HasMore)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustCounterPersists(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewRepository(gdb)

	tag := &models.Tag{ID: "64b1f77bcf86cd7994390005", Name: "golang", PostCount: 2}

	mock.ExpectExec(`UPDATE "tags" SET .+ WHERE "id" = .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	v, err := repo.AdjustCounter(context.Background(), tag, "postCount", counter.Increment)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
	assert.Equal(t, int64(3), tag.PostCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustCounterClampsAtZero(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewRepository(gdb)

	comment := &models.Comment{ID: "64b1f77bcf86cd7994390006", PostID: "64b1f77bcf86cd7994390007", AuthorID: "64b1f77bcf86cd7994390010", Likes: 0}

	mock.ExpectExec(`UPDATE "comments" SET .+ WHERE "id" = .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	v, err := repo.AdjustCounter(context.Background(), comment, "likes", counter.Decrement)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustCounterUnknownField(t *testing.T) {
	gdb, _ := newTestDB(t)
	repo := NewRepository(gdb)

	_, err := repo.AdjustCounter(context.Background(), &models.Tag{ID: "64b1f77bcf86cd7994390005"}, "views", counter.Increment)
	assert.Error(t, err)
}

func TestCommentRepositoryDeleteChildren(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewCommentRepository(NewRepository(gdb))

	mock.ExpectExec(`DELETE FROM "comments" WHERE parent_comment_id = .+`).
		WithArgs("64b1f77bcf86cd7994390008").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.DeleteChildren(context.Background(), "64b1f77bcf86cd7994390008")
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
