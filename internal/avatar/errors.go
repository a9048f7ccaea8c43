package avatar

import (
	"errors"
	"fmt"
)

// ErrImageGeneration matches every *GenerationError via errors.Is.
var ErrImageGeneration = errors.New("avatar: image generation failed")

// Stage names the step of Generate that failed.
type Stage string

const (
	StageValidate Stage = "validate"
	StageAllocate Stage = "allocate"
	StageEncode   Stage = "encode"
)

// GenerationError reports a failed call. No partial image accompanies it.
type GenerationError struct {
	Stage Stage
	Err   error
}

func newGenerationError(stage Stage, err error) *GenerationError {
	return &GenerationError{Stage: stage, Err: err}
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("avatar: %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool {
	return target == ErrImageGeneration
}

// FontResolutionFailure records one font source that could not be loaded.
// These are only logged; Generate falls through to the next source.
type FontResolutionFailure struct {
	Source string
	Err    error
}

func (e *FontResolutionFailure) Error() string {
	return fmt.Sprintf("font %q: %v", e.Source, e.Err)
}

func (e *FontResolutionFailure) Unwrap() error { return e.Err }

func errInvalidSize(size int) error {
	return fmt.Errorf("canvas size must be positive, got %d", size)
}

func errCanvasTooLarge(size int, budget int64) error {
	return fmt.Errorf("canvas %dx%d exceeds budget of %d pixels", size, size, budget)
}
