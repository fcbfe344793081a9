package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coursedesk/coursedesk/internal/sec"
	"github.com/coursedesk/coursedesk/internal/storage"
	"github.com/coursedesk/coursedesk/internal/storage/db"
	"github.com/coursedesk/coursedesk/internal/validate"
)

type handler struct {
	store  storage.Store
	hasher *sec.Hasher
	logger *slog.Logger
}

func (h handler) register(e *echo.Echo) {
	e.POST("/users", h.createUser)

	authed := e.Group("", h.requireAuth)
	authed.GET("/users", h.currentUser)

	authed.GET("/courses", h.listCourses)
	authed.GET("/courses/:id", h.getCourse)
	authed.POST("/courses", h.createCourse)
	authed.PUT("/courses/:id", h.updateCourse)
	authed.DELETE("/courses/:id", h.deleteCourse)
}

// requireAuth re-verifies Basic credentials on every request and attaches
// the principal to the request context. Every failure collapses to the same
// 401 body; the specific reason only reaches the server log.
func (h handler) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		user, err := sec.Authenticate(req.Context(), req, h.store, h.hasher)
		if err != nil {
			// A store failure is not a rejection; let the error handler map
			// it to a 500 instead of blaming the credentials.
			if !sec.IsRejection(err) {
				return fmt.Errorf("failed to authenticate: %w", err)
			}
			h.logger.LogAttrs(
				req.Context(),
				slog.LevelWarn,
				"authentication rejected",
				slog.String("uri", req.RequestURI),
				slog.Any("error", err),
			)
			return errAccessDenied
		}
		c.SetRequest(req.WithContext(sec.SetAuthenticatedUser(req.Context(), user)))
		return next(c)
	}
}

// requireOwnership is the authorization stage for course mutation: the
// authenticated principal must be the course's recorded owner. It assumes
// the course has already been fetched; absence is a 404 decided earlier.
func requireOwnership(principal db.User, course db.CourseWithOwner) error {
	if principal.ID != course.UserID {
		return errNotOwner
	}
	return nil
}

// Terminal pipeline responses. Bodies are part of the wire contract.
var (
	errAccessDenied = echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
		"message": "Access Denied",
	})
	errNotOwner = echo.NewHTTPError(http.StatusForbidden, echo.Map{
		"error": "The course you are attempting to modify is owned by a different user",
	})
)

func validationFailed(messages []string) error {
	return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": messages})
}

// userPayload is the decoded body of POST /users. Pointer fields distinguish
// omitted keys from empty values for the presence rules; unknown extra keys
// are ignored.
type userPayload struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	EmailAddress *string `json:"emailAddress"`
	Password     *string `json:"password"`
}

// coursePayload is the decoded body of POST and PUT /courses. A userId key,
// if supplied, is ignored: the owner is always the authenticated principal
// and ownership is never reassigned.
type coursePayload struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

// userResponse is the public projection of a user. The password hash has no
// field here and can never be serialized.
type userResponse struct {
	ID           uint64 `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

type courseResponse struct {
	ID              uint64       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	EstimatedTime   *string      `json:"estimatedTime"`
	MaterialsNeeded *string      `json:"materialsNeeded"`
	UserID          uint64       `json:"userId"`
	User            userResponse `json:"user"`
}

func toUserResponse(user db.User) userResponse {
	return userResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		EmailAddress: user.EmailAddress,
	}
}

func toCourseResponse(course db.CourseWithOwner) courseResponse {
	return courseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   fromNullString(course.EstimatedTime),
		MaterialsNeeded: fromNullString(course.MaterialsNeeded),
		UserID:          course.UserID,
		User:            toUserResponse(course.Owner),
	}
}

func (h handler) currentUser(c echo.Context) error {
	user := sec.GetAuthenticatedUser(c.Request().Context())
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h handler) createUser(c echo.Context) error {
	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if messages := validate.Check(
		validate.Required("firstName", payload.FirstName),
		validate.Required("lastName", payload.LastName),
		validate.Required("emailAddress", payload.EmailAddress),
		validate.Required("password", payload.Password),
	); len(messages) > 0 {
		return validationFailed(messages)
	}

	ctx := c.Request().Context()
	hash, err := h.hasher.Hash(ctx, *payload.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = h.store.CreateUser(ctx, db.User{
		FirstName:    *payload.FirstName,
		LastName:     *payload.LastName,
		EmailAddress: *payload.EmailAddress,
		PasswordHash: hash,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return validationFailed([]string{
			fmt.Sprintf("The email address %q is already in use", *payload.EmailAddress),
		})
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/")
	return c.NoContent(http.StatusCreated)
}

func (h handler) listCourses(c echo.Context) error {
	courses, err := h.store.ListCourses(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}
	results := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		results = append(results, toCourseResponse(course))
	}
	return c.JSON(http.StatusOK, results)
}

func (h handler) getCourse(c echo.Context) error {
	course, err := h.fetchCourse(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCourseResponse(course))
}

func (h handler) createCourse(c echo.Context) error {
	var payload coursePayload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if messages := validate.Check(
		validate.Required("title", payload.Title),
		validate.Required("description", payload.Description),
	); len(messages) > 0 {
		return validationFailed(messages)
	}

	ctx := c.Request().Context()
	course, err := h.store.CreateCourse(ctx, db.Course{
		Title:           *payload.Title,
		Description:     *payload.Description,
		EstimatedTime:   toNullString(payload.EstimatedTime),
		MaterialsNeeded: toNullString(payload.MaterialsNeeded),
		UserID:          sec.GetAuthenticatedUser(ctx).ID,
	})
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/courses/"+strconv.FormatUint(course.ID, 10))
	return c.NoContent(http.StatusCreated)
}

func (h handler) updateCourse(c echo.Context) error {
	var payload coursePayload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if messages := validate.Check(
		validate.Required("title", payload.Title),
		validate.Required("description", payload.Description),
	); len(messages) > 0 {
		return validationFailed(messages)
	}

	course, err := h.fetchCourse(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := requireOwnership(sec.GetAuthenticatedUser(ctx), course); err != nil {
		return err
	}

	// Partial update: optional fields omitted from the payload retain their
	// stored values.
	course.Title = *payload.Title
	course.Description = *payload.Description
	if payload.EstimatedTime != nil {
		course.EstimatedTime = toNullString(payload.EstimatedTime)
	}
	if payload.MaterialsNeeded != nil {
		course.MaterialsNeeded = toNullString(payload.MaterialsNeeded)
	}

	if err := h.store.UpdateCourse(ctx, course.Course); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h handler) deleteCourse(c echo.Context) error {
	course, err := h.fetchCourse(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := requireOwnership(sec.GetAuthenticatedUser(ctx), course); err != nil {
		return err
	}
	if err := h.store.DeleteCourse(ctx, course.ID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// fetchCourse resolves the :id route parameter to a stored course. An id
// that is not a number cannot reference anything, so it is a 404 like any
// other absent course.
func (h handler) fetchCourse(c echo.Context) (db.CourseWithOwner, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return db.CourseWithOwner{}, echo.ErrNotFound
	}
	course, err := h.store.GetCourse(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return course, echo.ErrNotFound
	}
	if err != nil {
		return course, fmt.Errorf("failed to fetch course %d: %w", id, err)
	}
	return course, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
