package custody

import (
	"regexp"

	"github.com/iov-one/custody/errors"
)

// isAsset matches all valid asset identifiers. Identifiers are case
// sensitive, "ETH" and "eth" are two different assets.
var isAsset = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,32}$`).MatchString

// ValidateAsset returns an error if the given string is not a valid asset
// identifier.
func ValidateAsset(asset string) error {
	if asset == "" {
		return errors.Wrap(errors.ErrEmpty, "asset")
	}
	if !isAsset(asset) {
		return errors.Wrapf(errors.ErrInvalidInput, "asset %q", asset)
	}
	return nil
}
