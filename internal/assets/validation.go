package assets

import (
	"fmt"
	"regexp"
)

// maxAssetNameLength bounds asset names taken from flags and config.
const maxAssetNameLength = 64

// assetName is the character set accepted for style and template names.
var assetName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Only ASCII letters, digits, '-' and '_' are accepted, which rules out path
// separators, traversal and extension manipulation.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidAssetName, maxAssetNameLength)
	}
	if !assetName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
