package lowpoly

import "github.com/pkg/errors"

var (
	// ErrInvalidOptions is returned when a Processor carries an out of range
	// value. It is reported before any work is done.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrEmptyImage is returned when the source image has no pixels.
	ErrEmptyImage = errors.New("empty image")

	// ErrDegenerateInput signals a broken call contract: fewer than three
	// points handed to the triangulator, or colours and triangles that do not
	// line up.
	ErrDegenerateInput = errors.New("degenerate input")
)
