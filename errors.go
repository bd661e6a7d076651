package dstring

import (
	cerrors "github.com/cockroachdb/errors"
	"github.com/pkg/errors"
)

// ErrMissingTerminator is the error returned from Validate when a live block's
// payload is not followed by its terminator byte
var ErrMissingTerminator error = errors.New("string block payload is not terminated")

// ErrReleasedBlock is the error returned from Validate when a block is
// observed with a non-positive reference count, indicating it has already
// been freed
var ErrReleasedBlock error = errors.New("string block has already been released")

func errCapacityBelowLength(capacity, length int) error {
	return cerrors.Newf("builder capacity %d is below its content length %d", capacity, length)
}
