package devdata

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk/internal/config"
	"github.com/coursedesk/coursedesk/internal/sec"
	"github.com/coursedesk/coursedesk/internal/storage"
)

func TestPopulate(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := storage.NewDB(t.Context(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	hasher := sec.NewHasher(0)
	const seed = 12345

	err = Populate(t.Context(), store, hasher, seed)
	require.NoError(t, err)

	courses, err := store.ListCourses(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, courses)
	for _, course := range courses {
		assert.NotEmpty(t, course.Title)
		assert.NotEmpty(t, course.Description)
		assert.NotEmpty(t, course.Owner.EmailAddress)
	}

	// Seeded users authenticate with the well-known password.
	owner, err := store.GetUserByEmail(t.Context(), courses[0].Owner.EmailAddress)
	require.NoError(t, err)
	assert.NoError(t, sec.ComparePassword(Password, owner.PasswordHash))

	// Re-seeding with the same corpus skips the existing users.
	count := len(courses)
	err = Populate(t.Context(), store, hasher, seed)
	require.NoError(t, err)
	courses, err = store.ListCourses(t.Context())
	require.NoError(t, err)
	assert.Len(t, courses, count)
}
