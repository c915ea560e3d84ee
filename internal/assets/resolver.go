package assets

import "errors"

// AssetResolver layers an optional asset directory over the embedded
// assets. A name missing from the directory is served from the binary; any
// other failure there is returned as is.
type AssetResolver struct {
	custom   AssetLoader // nil without an asset directory
	embedded AssetLoader
}

// NewAssetResolver returns a resolver over customBasePath, or over the
// embedded assets alone when customBasePath is empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	dir, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = dir
	return r, nil
}

// Load tries the asset directory first, then the embedded assets.
func (r *AssetResolver) Load(kind Kind, name string) (string, error) {
	if r.custom != nil {
		content, err := r.custom.Load(kind, name)
		if !errors.Is(err, kind.NotFound) {
			return content, err
		}
	}
	return r.embedded.Load(kind, name)
}

// HasCustomLoader reports whether an asset directory is layered on top.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ AssetLoader = (*AssetResolver)(nil)
