package orderedmap

import (
	"errors"
	"fmt"
)

var ErrUnsupportedKeyKind = errors.New("unsupported key kind")

// UnsupportedKeyKindError is returned when a key cannot be hashed or cannot
// be ordered against the keys already stored in its bucket.
type UnsupportedKeyKindError struct {
	Key any
	Err error
}

func (e *UnsupportedKeyKindError) Error() string {
	return fmt.Sprintf("%s %T: %v", ErrUnsupportedKeyKind, e.Key, e.Err)
}

func (e *UnsupportedKeyKindError) Unwrap() []error {
	return []error{ErrUnsupportedKeyKind, e.Err}
}

func unsupported(key any, err error) error {
	return &UnsupportedKeyKindError{Key: key, Err: err}
}
