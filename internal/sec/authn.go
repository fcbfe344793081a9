package sec

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coursedesk/coursedesk/internal/storage"
	"github.com/coursedesk/coursedesk/internal/storage/db"
)

// Authentication failure reasons. All of them surface to the client as the
// same 401 response; the specific reason is only ever logged server-side.
var (
	// ErrNoCredentials is returned when the Authorization header is missing
	// or does not carry parseable Basic credentials.
	ErrNoCredentials = errors.New("auth header not found")
	// ErrUnknownPrincipal is returned when no user exists for the supplied
	// email address.
	ErrUnknownPrincipal = errors.New("user not found")
	// ErrBadSecret is returned when the password does not match the stored
	// hash.
	ErrBadSecret = errors.New("authentication failure")
)

// Authenticate resolves the logged in user from req. Authentication is
// stateless: it re-verifies the Basic credentials against the user store on
// every call and never creates a session. Credential rejections wrap one of
// the failure reason sentinels and include the offending identifier where
// one was supplied; callers must not forward them to the client verbatim.
// A store failure is not a rejection and propagates as-is, wrapped.
func Authenticate(ctx context.Context, req *http.Request, users storage.Users, hasher *Hasher) (user db.User, err error) {
	email, password, ok := ParseBasicAuth(req.Header.Get("Authorization"))
	if !ok {
		return user, ErrNoCredentials
	}
	if user, err = users.GetUserByEmail(ctx, email); errors.Is(err, storage.ErrNotFound) {
		return user, fmt.Errorf("%w for username: %s", ErrUnknownPrincipal, email)
	} else if err != nil {
		return user, fmt.Errorf("failed to look up user %s: %w", email, err)
	}
	if err = hasher.Compare(ctx, password, user.PasswordHash); err != nil {
		return user, fmt.Errorf("%w for user: %s", ErrBadSecret, email)
	}
	return user, nil
}

// IsRejection reports whether err is a credential rejection, as opposed to
// an infrastructure failure while verifying credentials. Only rejections
// may surface to the client as a 401.
func IsRejection(err error) bool {
	return errors.Is(err, ErrNoCredentials) ||
		errors.Is(err, ErrUnknownPrincipal) ||
		errors.Is(err, ErrBadSecret)
}

type userKey struct{}

// GetAuthenticatedUser returns the principal resolved for the current
// request. Returns a zero-value User if the context has no authenticated
// user (should only happen if middleware is misconfigured).
func GetAuthenticatedUser(ctx context.Context) db.User {
	if user, ok := ctx.Value(userKey{}).(db.User); ok {
		return user
	}
	return db.User{}
}

// SetAuthenticatedUser attaches the principal to the context for downstream
// pipeline stages. The auth middleware injects this; this function is also
// useful in tests.
func SetAuthenticatedUser(ctx context.Context, user db.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}
