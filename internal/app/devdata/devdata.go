// Package devdata generates sample users and courses for local development
// and manual API testing.
package devdata

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/coursedesk/coursedesk/internal/sec"
	"github.com/coursedesk/coursedesk/internal/storage"
	"github.com/coursedesk/coursedesk/internal/storage/db"
)

// Corpus generation constants.
const (
	minUsers          = 3
	maxExtraUsers     = 4 // 3-7 users total
	minCoursesPerUser = 1
	maxExtraCourses   = 3 // 1-4 courses per user
)

// Password is the password of every generated user, so the API can be
// exercised by hand against seeded data.
const Password = "password"

// Seed returns the generator seed from the COURSEDESK_SEED environment
// variable, or a random value if not set.
func Seed() uint64 {
	if env := os.Getenv("COURSEDESK_SEED"); env != "" {
		if seed, err := strconv.ParseUint(env, 10, 64); err == nil {
			return seed
		}
	}
	return rand.Uint64() //nolint:gosec // intentionally weak random for test data
}

// Populate inserts generated users and their courses into the store. Users
// that already exist (same email address) are skipped, so repeated seeding
// is safe.
func Populate(ctx context.Context, store storage.Store, hasher *sec.Hasher, seed uint64) error {
	faker := gofakeit.New(seed)

	// One hash shared by all generated users; bcrypt at cost 10 per user
	// would make seeding needlessly slow.
	hash, err := hasher.Hash(ctx, Password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	userCount := minUsers + faker.IntRange(0, maxExtraUsers)
	for i := range userCount {
		first := faker.FirstName()
		last := faker.LastName()
		user, err := store.CreateUser(ctx, db.User{
			FirstName:    first,
			LastName:     last,
			EmailAddress: fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			PasswordHash: hash,
		})
		if errors.Is(err, storage.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create seed user: %w", err)
		}

		courseCount := minCoursesPerUser + faker.IntRange(0, maxExtraCourses)
		for range courseCount {
			course := db.Course{
				Title:       generateTitle(faker),
				Description: faker.Paragraph(1, 3, 12, " "),
				UserID:      user.ID,
			}
			if faker.Bool() {
				course.EstimatedTime.String = fmt.Sprintf("%d hours", faker.IntRange(2, 40))
				course.EstimatedTime.Valid = true
			}
			if faker.Bool() {
				course.MaterialsNeeded.String = "* " + faker.Noun() + "\n* " + faker.Noun()
				course.MaterialsNeeded.Valid = true
			}
			if _, err := store.CreateCourse(ctx, course); err != nil {
				return fmt.Errorf("failed to create seed course: %w", err)
			}
		}
	}
	return nil
}

func generateTitle(faker *gofakeit.Faker) string {
	patterns := []func(*gofakeit.Faker) string{
		func(f *gofakeit.Faker) string { return fmt.Sprintf("Introduction to %s", f.Noun()) },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("Advanced %s %s", f.Adjective(), f.Noun()) },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("Learn How to %s", f.Verb()) },
		func(f *gofakeit.Faker) string { return fmt.Sprintf("The %s Workshop", f.Noun()) },
	}
	return patterns[faker.IntRange(0, len(patterns)-1)](faker)
}
