package fks

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// errors.Wrapf below produces errors implementing Unwrap() error (as of
// pkg/errors v0.9), so callers use the standard library's errors.Is /
// errors.As against the sentinels below rather than string matching.

// Sentinel errors returned (wrapped) from Build. Callers should compare
// against these with errors.Is rather than matching on message text.
var (
	// ErrDuplicateKey is returned when two distinct input positions hold
	// equal keys (per Equaler). The caller must deduplicate the input.
	ErrDuplicateKey = errors.New("fks: duplicate key")

	// ErrHashCollision is returned when two unequal keys hash to the same
	// word. This is a defect of the (key set, Hasher) pairing, not a
	// transient condition; Build does not attempt to reseed.
	ErrHashCollision = errors.New("fks: hash collision between unequal keys")

	// ErrConstructionFailure is returned when the lambda retry loop
	// exhausts every halving without finding a feasible bucket/parameter
	// assignment.
	ErrConstructionFailure = errors.New("fks: construction failed for every lambda in the retry sequence")
)

func duplicateKeyError(key any) error {
	return errors.Wrapf(ErrDuplicateKey, "key %v already present in the input", key)
}

func hashCollisionError(h uint64, existing, incoming any) error {
	return errors.Wrapf(ErrHashCollision, "hash %#016x shared by unequal keys %v and %v", h, existing, incoming)
}

func constructionFailureError(n int, lambda uint) error {
	return errors.Wrapf(ErrConstructionFailure, "no lambda <= %d produced a perfect hash for %d keys", lambda, n)
}

// errBuildInfeasible is construct's private signal that this particular
// lambda could not place every bucket; Build treats it as "try the next,
// smaller lambda" rather than surfacing it to the caller directly.
var errBuildInfeasible = stderrors.New("fks: lambda infeasible")

// isFatalBuildError reports whether err should abort the lambda retry
// loop outright rather than trying a smaller lambda: duplicate keys and
// hash collisions are properties of the input and the hash function, not
// of lambda, so no amount of retrying changes the outcome.
func isFatalBuildError(err error) bool {
	return stderrors.Is(err, ErrDuplicateKey) || stderrors.Is(err, ErrHashCollision)
}
