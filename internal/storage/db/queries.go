package db

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql methods the queries need, satisfied by
// both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries bundles the hand-written SQL statements over a DBTX.
type Queries struct {
	db DBTX
}

// New creates a Queries over the given handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const insertUser = `
insert into users (id, first_name, last_name, email_address, password_hash)
values (?, ?, ?, ?, ?)
on conflict (email_address) do nothing
returning id
`

// InsertUser inserts a user row. It returns sql.ErrNoRows if the email
// address is already registered.
func (q *Queries) InsertUser(ctx context.Context, user User) error {
	var id int64
	return q.db.QueryRowContext(ctx, insertUser,
		int64(user.ID), //nolint:gosec // snowflake ids fit in 63 bits
		user.FirstName,
		user.LastName,
		user.EmailAddress,
		user.PasswordHash,
	).Scan(&id)
}

const getUser = `
select id, first_name, last_name, email_address, password_hash
from users where id = ?
`

// GetUser returns the user with the given ID.
func (q *Queries) GetUser(ctx context.Context, id uint64) (User, error) {
	var user User
	err := q.db.QueryRowContext(ctx, getUser, int64(id)).Scan( //nolint:gosec // 63-bit ids
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.EmailAddress,
		&user.PasswordHash,
	)
	return user, err
}

const getUserByEmail = `
select id, first_name, last_name, email_address, password_hash
from users where email_address = ?
`

// GetUserByEmail returns the user with the given email address. Matching is
// exact and case-sensitive.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := q.db.QueryRowContext(ctx, getUserByEmail, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.EmailAddress,
		&user.PasswordHash,
	)
	return user, err
}

const deleteUser = `delete from users where id = ?`

// DeleteUser removes a user row. Owned courses go with it via the cascading
// foreign key.
func (q *Queries) DeleteUser(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, deleteUser, int64(id)) //nolint:gosec // 63-bit ids
	return err
}

const insertCourse = `
insert into courses (id, title, description, estimated_time, materials_needed, user_id)
values (?, ?, ?, ?, ?, ?)
`

// InsertCourse inserts a course row.
func (q *Queries) InsertCourse(ctx context.Context, course Course) error {
	_, err := q.db.ExecContext(ctx, insertCourse,
		int64(course.ID), //nolint:gosec // snowflake ids fit in 63 bits
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		int64(course.UserID), //nolint:gosec // 63-bit ids
	)
	return err
}

const courseWithOwnerColumns = `
c.id, c.title, c.description, c.estimated_time, c.materials_needed, c.user_id,
u.id, u.first_name, u.last_name, u.email_address
`

const getCourse = `
select ` + courseWithOwnerColumns + `
from courses c join users u on u.id = c.user_id
where c.id = ?
`

// GetCourse returns the course with the given ID joined with its owner.
func (q *Queries) GetCourse(ctx context.Context, id uint64) (CourseWithOwner, error) {
	row := q.db.QueryRowContext(ctx, getCourse, int64(id)) //nolint:gosec // 63-bit ids
	return scanCourseWithOwner(row)
}

const listCourses = `
select ` + courseWithOwnerColumns + `
from courses c join users u on u.id = c.user_id
order by c.id
`

// ListCourses returns all courses joined with their owners, ordered by ID.
func (q *Queries) ListCourses(ctx context.Context) ([]CourseWithOwner, error) {
	rows, err := q.db.QueryContext(ctx, listCourses)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var courses []CourseWithOwner
	for rows.Next() {
		course, err := scanCourseWithOwner(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

const updateCourse = `
update courses
set title = ?, description = ?, estimated_time = ?, materials_needed = ?
where id = ?
`

// UpdateCourse replaces the mutable fields of a course row. Ownership is
// immutable: user_id is deliberately not part of the statement.
func (q *Queries) UpdateCourse(ctx context.Context, course Course) error {
	_, err := q.db.ExecContext(ctx, updateCourse,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		int64(course.ID), //nolint:gosec // 63-bit ids
	)
	return err
}

const deleteCourse = `delete from courses where id = ?`

// DeleteCourse removes a course row.
func (q *Queries) DeleteCourse(ctx context.Context, id uint64) error {
	_, err := q.db.ExecContext(ctx, deleteCourse, int64(id)) //nolint:gosec // 63-bit ids
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCourseWithOwner(row scanner) (CourseWithOwner, error) {
	var c CourseWithOwner
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.EstimatedTime,
		&c.MaterialsNeeded,
		&c.UserID,
		&c.Owner.ID,
		&c.Owner.FirstName,
		&c.Owner.LastName,
		&c.Owner.EmailAddress,
	)
	return c, err
}
