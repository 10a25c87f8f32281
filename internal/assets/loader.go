package assets

import (
	"fmt"
	"strings"
)

// AssetLoader loads snippet styles and templates by bare name.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css or ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns templates/{name}.html or ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName rejects empty names and names containing separators or
// dots, so a name can only ever address one file in one asset directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
