package storage

import (
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk/internal/config"
	"github.com/coursedesk/coursedesk/internal/storage/db"
)

func TestDB(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := NewDB(t.Context(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	owner, err := store.CreateUser(t.Context(), db.User{
		FirstName:    "Test",
		LastName:     "User",
		EmailAddress: "test@user.com",
		PasswordHash: []byte("hash"),
	})
	require.NoError(t, err)
	require.NotZero(t, owner.ID)

	t.Run("UserCRUD", func(t *testing.T) {
		t.Parallel()

		actual, err := store.GetUser(t.Context(), owner.ID)
		require.NoError(t, err)
		assert.Equal(t, owner, actual)

		_, err = store.GetUser(t.Context(), 0)
		require.ErrorIs(t, err, ErrNotFound)

		actual, err = store.GetUserByEmail(t.Context(), "test@user.com")
		require.NoError(t, err)
		assert.Equal(t, owner, actual)

		_, err = store.GetUserByEmail(t.Context(), "not@real.com")
		require.ErrorIs(t, err, ErrNotFound)

		// Email matching is exact and case-sensitive.
		_, err = store.GetUserByEmail(t.Context(), "Test@User.com")
		require.ErrorIs(t, err, ErrNotFound)

		_, err = store.CreateUser(t.Context(), db.User{
			FirstName:    "Other",
			LastName:     "User",
			EmailAddress: "test@user.com",
			PasswordHash: []byte{},
		})
		require.ErrorIs(t, err, ErrAlreadyExists)

		user, err := store.CreateUser(t.Context(), db.User{
			FirstName:    "Short",
			LastName:     "Lived",
			EmailAddress: "short@lived.com",
			PasswordHash: []byte{},
		})
		require.NoError(t, err)

		err = store.DeleteUser(t.Context(), user.ID)
		require.NoError(t, err)
		_, err = store.GetUserByEmail(t.Context(), user.EmailAddress)
		require.ErrorIs(t, err, ErrNotFound)

		err = store.DeleteUser(t.Context(), user.ID)
		require.NoError(t, err)
	})

	t.Run("CourseCRUD", func(t *testing.T) {
		t.Parallel()

		course, err := store.CreateCourse(t.Context(), db.Course{
			Title:       "Test Course",
			Description: "A dummy test course",
			EstimatedTime: sql.NullString{
				String: "12 hours",
				Valid:  true,
			},
			UserID: owner.ID,
		})
		require.NoError(t, err)
		require.NotZero(t, course.ID)

		actual, err := store.GetCourse(t.Context(), course.ID)
		require.NoError(t, err)
		assert.Equal(t, course, actual.Course)
		assert.Equal(t, owner.ID, actual.Owner.ID)
		assert.Equal(t, "test@user.com", actual.Owner.EmailAddress)
		assert.Empty(t, actual.Owner.PasswordHash)

		_, err = store.GetCourse(t.Context(), 0)
		require.ErrorIs(t, err, ErrNotFound)

		course.Title = "Renamed Course"
		course.MaterialsNeeded = sql.NullString{String: "* a laptop", Valid: true}
		err = store.UpdateCourse(t.Context(), course)
		require.NoError(t, err)

		actual, err = store.GetCourse(t.Context(), course.ID)
		require.NoError(t, err)
		assert.Equal(t, course, actual.Course)

		err = store.DeleteCourse(t.Context(), course.ID)
		require.NoError(t, err)
		_, err = store.GetCourse(t.Context(), course.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ListCourses", func(t *testing.T) {
		t.Parallel()

		lister, err := store.CreateUser(t.Context(), db.User{
			FirstName:    "List",
			LastName:     "Owner",
			EmailAddress: "list@owner.com",
			PasswordHash: []byte{},
		})
		require.NoError(t, err)

		first, err := store.CreateCourse(t.Context(), db.Course{
			Title:       "List Course 1",
			Description: "first",
			UserID:      lister.ID,
		})
		require.NoError(t, err)
		second, err := store.CreateCourse(t.Context(), db.Course{
			Title:       "List Course 2",
			Description: "second",
			UserID:      lister.ID,
		})
		require.NoError(t, err)

		courses, err := store.ListCourses(t.Context())
		require.NoError(t, err)

		var mine []db.Course
		for _, course := range courses {
			if course.UserID == lister.ID {
				assert.Equal(t, lister.EmailAddress, course.Owner.EmailAddress)
				mine = append(mine, course.Course)
			}
		}
		assert.Equal(t, []db.Course{first, second}, mine)
	})

	t.Run("CreateCourseUnknownOwner", func(t *testing.T) {
		t.Parallel()

		// The foreign key requires an existing owner at creation time.
		_, err := store.CreateCourse(t.Context(), db.Course{
			Title:       "Orphan",
			Description: "no such owner",
			UserID:      1,
		})
		require.Error(t, err)
	})
}
