// Package storage provides the state management for users and courses.
package storage

import (
	"context"

	"github.com/coursedesk/coursedesk/internal/storage/db"
)

const (
	// ErrNotFound is returned when a course or user cannot be found.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned if the email address is already registered.
	ErrAlreadyExists Error = "already exists"
)

// Error is an error type returned by the storage implementation.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Users are the methods on a storage implementation that are responsible for
// accessing and modifying users.
type Users interface {
	// GetUser returns a single user with the specified ID. An [ErrNotFound]
	// is returned if the user ID does not exist.
	GetUser(ctx context.Context, userID uint64) (db.User, error)
	// GetUserByEmail returns a single user with the specified email address,
	// matched exactly and case-sensitively. An [ErrNotFound] is returned if
	// no user has that address.
	GetUserByEmail(ctx context.Context, email string) (db.User, error)
	// CreateUser creates a user, assigning an ID if one is not set. An
	// [ErrAlreadyExists] error is returned if the email address is already
	// in use.
	CreateUser(ctx context.Context, user db.User) (db.User, error)
	// DeleteUser removes a user and all their courses. Note that this is a
	// hard delete; data is not recoverable.
	DeleteUser(ctx context.Context, userID uint64) error
}

// Courses are the methods on a storage implementation that are responsible
// for accessing and modifying courses.
type Courses interface {
	// ListCourses returns all courses, each joined with its owning user,
	// ordered by ID.
	ListCourses(ctx context.Context) ([]db.CourseWithOwner, error)
	// GetCourse returns a single course joined with its owning user. An
	// [ErrNotFound] is returned if the course ID does not exist.
	GetCourse(ctx context.Context, courseID uint64) (db.CourseWithOwner, error)
	// CreateCourse creates a course, assigning an ID if one is not set. The
	// course's UserID must reference an existing user.
	CreateCourse(ctx context.Context, course db.Course) (db.Course, error)
	// UpdateCourse replaces the mutable fields of an existing course.
	// Ownership is immutable and is never updated.
	UpdateCourse(ctx context.Context, course db.Course) error
	// DeleteCourse removes a course.
	DeleteCourse(ctx context.Context, courseID uint64) error
}

// Store is the combination interface for [Users] and [Courses].
type Store interface {
	Users
	Courses
	// Close releases any resources held by the store. An error is returned
	// if the store cannot be cleanly closed.
	Close() error
}
