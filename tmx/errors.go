package tmx

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Load failure kinds. A *LoadError matches exactly one of these with errors.Is.
var (
	ErrFileNotFound           = errors.New("file not found")
	ErrNotReadable            = errors.New("file not readable")
	ErrXMLParse               = errors.New("malformed xml")
	ErrNotAMapDocument        = errors.New("not a map document")
	ErrMissingDimensions      = errors.New("missing map dimensions")
	ErrInvalidDimensions      = errors.New("invalid map dimensions")
	ErrNoLayers               = errors.New("no layers")
	ErrMissingLayerData       = errors.New("layer has no data block")
	ErrUnsupportedEncoding    = errors.New("unsupported layer data encoding")
	ErrUnsupportedCompression = errors.New("unsupported layer data compression")
	ErrTileCountMismatch      = errors.New("tile count mismatch")
	ErrInvalidTileID          = errors.New("invalid tile id")
)

// LoadError describes why a map could not be loaded.
type LoadError struct {
	// Kind is one of the Err* values above.
	Kind error
	Path string

	// LayerIndex is -1 when the failure is not about a specific layer.
	LayerIndex int
	Layer      string

	// X and Y are set for failures at a specific grid cell; HasCell tells
	// whether they are meaningful.
	X, Y    int
	HasCell bool

	// Found and Expected are set for ErrTileCountMismatch.
	Found, Expected int

	Detail string
	Err    error
}

func newLoadError(kind error, path string) *LoadError {
	return &LoadError{Kind: kind, Path: path, LayerIndex: -1}
}

func (e *LoadError) withLayer(idx int, name string) *LoadError {
	e.LayerIndex = idx
	e.Layer = name
	return e
}

func (e *LoadError) withCell(x, y int) *LoadError {
	e.X, e.Y, e.HasCell = x, y, true
	return e
}

func (e *LoadError) withDetail(format string, args ...interface{}) *LoadError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

func (e *LoadError) withCause(err error) *LoadError {
	e.Err = err
	return e
}

func (e *LoadError) Error() string {
	parts := []string{"tmx"}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	parts = append(parts, e.Kind.Error())
	if e.LayerIndex >= 0 {
		parts = append(parts, fmt.Sprintf("layer %d (%q)", e.LayerIndex, e.Layer))
	}
	if e.HasCell {
		parts = append(parts, fmt.Sprintf("at [%d,%d]", e.X, e.Y))
	}
	if e.Kind == ErrTileCountMismatch {
		parts = append(parts, fmt.Sprintf("found %d, expected %d", e.Found, e.Expected))
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Is matches the failure kind.
func (e *LoadError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause, if any.
func (e *LoadError) Unwrap() error {
	return e.Err
}
