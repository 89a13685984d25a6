package errs

import "errors"

// Error categories. Domain and usecase sentinels are marked with exactly one of
// these so the transport layer can map them without knowing every sentinel.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrRemoteFailure  = errors.New("remote store failure")
	ErrNoAvailability = errors.New("no availability")
)

// Category returns the category err was marked with, or nil.
func Category(err error) error {
	for _, c := range []error{ErrInvalidInput, ErrNotFound, ErrNoAvailability, ErrConflict, ErrRemoteFailure} {
		if Is(err, c) {
			return c
		}
	}
	return nil
}
