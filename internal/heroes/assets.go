package heroes

import "io/fs"

// PlaceholderImage stands in for an asset that could not be resolved.
const PlaceholderImage = "placeholder"

type Variant string

const (
	Variant2x Variant = "@2x"
	Variant3x Variant = "@3x"
)

// png is tried before jpg for every variant
var imageExtensions = []string{".png", ".jpg"}

// AssetResolver finds hero images inside an asset tree.
type AssetResolver struct {
	fsys fs.FS
}

// NewAssetResolver accepts a nil fsys, in which case nothing resolves.
func NewAssetResolver(fsys fs.FS) *AssetResolver {
	return &AssetResolver{fsys: fsys}
}

// Resolve returns the path of name+variant with the first extension
// that exists.
func (r *AssetResolver) Resolve(name string, v Variant) (string, bool) {
	if r == nil || r.fsys == nil || name == "" {
		return "", false
	}
	for _, ext := range imageExtensions {
		p := name + string(v) + ext
		// any stat error moves on to the next extension
		if _, err := fs.Stat(r.fsys, p); err == nil {
			return p, true
		}
	}
	return "", false
}
