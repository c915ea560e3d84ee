// Package assets provides the page templates and CSS styles used to render
// compiled markup.
//
// # Loaders
//
// Every loader implements AssetLoader.Load(kind, name), where kind is Style
// or Template and name carries no extension:
//
//	EmbeddedLoader    go:embed files compiled into the binary
//	FilesystemLoader  a directory on disk
//	AssetResolver     a FilesystemLoader over an EmbeddedLoader
//
// EmbeddedLoader provides the built-in page templates (default, minimal) and
// styles (default, plain).
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader only when the
// asset is not found there.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css      # CSS styles
//	└── templates/
//	    └── {name}.html     # page templates with {{TITLE}} and {{BODY}}
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
