//go:build !linux

package fbdev

import (
	"errors"
)

// Open is only supported on Linux.
func Open(path string) (*Screen, error) {
	return nil, errors.ErrUnsupported
}
