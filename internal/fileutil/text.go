package fileutil

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// utf8BOM is the byte order mark some editors prepend to UTF-8 files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText reads a source file and returns its content as UTF-8.
// UTF-8 and UTF-16 (either byte order) are recognised by their byte order
// mark, which is stripped; content without a BOM is taken as UTF-8.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", err
	}
	return DecodeText(data)
}

// DecodeText converts BOM-marked content to UTF-8. Invalid UTF-8 without a
// BOM is passed through with invalid bytes replaced by U+FFFD.
func DecodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(data[len(utf8BOM):]), nil
	}
	if hasUTF16BOM(data) {
		// BOMOverride picks the byte order from the mark and strips it.
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		out, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return "", fmt.Errorf("decoding UTF-16 text: %w", err)
		}
		return string(out), nil
	}
	if !utf8.Valid(data) {
		return string(bytes.ToValidUTF8(data, []byte("\uFFFD"))), nil
	}
	return string(data), nil
}

func hasUTF16BOM(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	return (data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF)
}
