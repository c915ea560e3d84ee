package assets

// AssetLoader loads assets by kind and bare name (no extension).
// Unknown names yield an error wrapping kind.NotFound; names failing
// ValidateAssetName yield ErrInvalidAssetName.
type AssetLoader interface {
	Load(kind Kind, name string) (string, error)
}
