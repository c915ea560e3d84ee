package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		// Valid names
		{"simple name", "default", nil},
		{"hyphen", "my-style", nil},
		{"underscore", "my_style", nil},
		{"digits", "style123", nil},
		{"mixed case", "MyStyle", nil},
		{"max length", strings.Repeat("a", maxAssetNameLength), nil},

		// Invalid names
		{"empty", "", ErrInvalidAssetName},
		{"too long", strings.Repeat("a", maxAssetNameLength+1), ErrInvalidAssetName},
		{"forward slash", "path/to/style", ErrInvalidAssetName},
		{"backslash", "path\\to\\style", ErrInvalidAssetName},
		{"parent traversal", "../secret", ErrInvalidAssetName},
		{"windows traversal", "..\\secret", ErrInvalidAssetName},
		{"dot in name", "style.css", ErrInvalidAssetName},
		{"hidden file", ".hidden", ErrInvalidAssetName},
		{"absolute unix", "/etc/passwd", ErrInvalidAssetName},
		{"absolute windows", "C:\\Windows", ErrInvalidAssetName},
		{"space", "my style", ErrInvalidAssetName},
		{"non-ascii", "stylé", ErrInvalidAssetName},
		{"nul byte", "style\x00", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAssetName_MessageNamesInput(t *testing.T) {
	t.Parallel()

	err := ValidateAssetName("../evil")
	if err == nil {
		t.Fatal("expected error for invalid name")
	}
	if !strings.Contains(err.Error(), "../evil") {
		t.Errorf("error %q should mention the rejected name", err)
	}
}
