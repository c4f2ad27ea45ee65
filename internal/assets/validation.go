package assets

import "fmt"

// ValidateAssetName checks a gallery asset name such as "gallery" before it
// becomes "templates/<name>.html" or "styles/<name>.css". Only ASCII
// letters, digits, '-' and '_' are accepted, so an --assets directory can
// only supply the files the gallery asks for.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
