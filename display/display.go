// Package display provides the windows a vkquad render instance can present
// to.
package display

import (
	"github.com/andewx/vkquad"
	"github.com/cockroachdb/errors"
)

// Open creates a window of the given kind with a fixed size.
func Open(kind, title string, width, height int) (vkquad.Display, error) {
	switch kind {
	case vkquad.WindowGLFW:
		window, err := NewGLFW(title, width, height)
		if err != nil {
			return nil, err
		}
		return window, nil
	case vkquad.WindowSDL2:
		window, err := NewSDL2(title, width, height)
		if err != nil {
			return nil, err
		}
		return window, nil
	}
	return nil, errors.Mark(errors.Newf("unknown window backend %q", kind), vkquad.ErrInitialization)
}
