package sec

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// HashCost is the bcrypt cost factor for new password hashes. It bounds
// verification latency while still resisting offline brute force.
const HashCost = 10

// ComparePassword returns an error if the provided password does not resolve
// to the given hash.
func ComparePassword[T ~string | ~[]byte](password T, hash []byte) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

// HashPassword generates the hash for a given password. The salt is embedded
// in the output, so hashing the same password twice yields different bytes
// that both verify. It errors if the password is longer than 72 bytes.
func HashPassword[T ~string | ~[]byte](password T) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), HashCost)
}

// Hasher bounds the number of concurrent bcrypt operations so CPU-bound
// hashing cannot starve the request accept loop under load. Acquisition
// honors context cancellation, so a client that goes away stops waiting for
// a slot.
type Hasher struct {
	sem *semaphore.Weighted
}

// NewHasher creates a Hasher allowing up to parallelism concurrent bcrypt
// operations. Values < 1 default to GOMAXPROCS.
func NewHasher(parallelism int64) *Hasher {
	if parallelism < 1 {
		parallelism = int64(runtime.GOMAXPROCS(0))
	}
	return &Hasher{sem: semaphore.NewWeighted(parallelism)}
}

// Hash is [HashPassword] gated by the concurrency limit.
func (h *Hasher) Hash(ctx context.Context, password string) ([]byte, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer h.sem.Release(1)
	return HashPassword(password)
}

// Compare is [ComparePassword] gated by the concurrency limit.
func (h *Hasher) Compare(ctx context.Context, password string, hash []byte) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.sem.Release(1)
	return ComparePassword(password, hash)
}
