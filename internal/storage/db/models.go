package db

import "database/sql"

// User is a row in the users table. PasswordHash must never appear in any
// response body; response shaping happens in the app package, which projects
// only the public fields.
type User struct {
	ID           uint64
	FirstName    string
	LastName     string
	EmailAddress string
	PasswordHash []byte
}

// Course is a row in the courses table. UserID references the owning user.
type Course struct {
	ID              uint64
	Title           string
	Description     string
	EstimatedTime   sql.NullString
	MaterialsNeeded sql.NullString
	UserID          uint64
}

// CourseWithOwner is a course row joined with its owning user.
type CourseWithOwner struct {
	Course
	Owner User
}
