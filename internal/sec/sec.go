// Package sec provides authentication and security primitives for the
// coursedesk REST API.
//
// # Authentication
//
// Authentication uses HTTP Basic Auth re-verified on every request; no
// session state is created. Credentials are validated against bcrypt
// password hashes stored in the database.
//
// IMPORTANT: Basic Auth transmits credentials in base64 encoding (not
// encrypted). TLS must be used in production to protect credentials in
// transit.
//
// # Components
//
//   - [ParseBasicAuth]: Extracts an (identifier, secret) pair from an
//     Authorization header value
//   - [Authenticate]: Validates Basic Auth credentials against the user store
//   - [GetAuthenticatedUser], [SetAuthenticatedUser]: Context accessors for
//     the authenticated principal
//   - [Hasher]: bcrypt password hashing behind a bounded concurrency gate
package sec
