package symspell

import (
	"errors"
	"fmt"
)

// ErrDistanceExceedsIndex is returned by Lookup when the requested
// max_edit_distance exceeds the index's build-time max_distance (spec §7.1,
// configuration error — fails the call immediately, no partial results).
var ErrDistanceExceedsIndex = errors.New("symspell: requested max distance exceeds index build-time max distance")

// ErrInvalidConfig is returned by NewRuntime and NewFrozen when the supplied Config violates a
// build-time constraint (spec §9: prefix_length < max_distance must be
// rejected at build time).
var ErrInvalidConfig = errors.New("symspell: invalid index configuration")

// configError wraps ErrInvalidConfig with detail while staying
// errors.Is-compatible.
func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func distanceError(requested, max int) error {
	return fmt.Errorf("%w (requested %d, index built for %d)", ErrDistanceExceedsIndex, requested, max)
}
