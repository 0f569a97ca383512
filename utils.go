package gallery

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// shouldEscape reports whether c is outside the unreserved set
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) that browsers leave untouched in a URI component.
func shouldEscape(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return false
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return false
	}
	return true
}

// EncodeURIComponent percent-encodes s so it can be used as a single URL path
// segment. Multi-byte UTF-8 sequences are escaped byte by byte.
func EncodeURIComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// DecodeURIComponent reverses percent-encoding. A '+' is kept as is.
// Malformed escapes and escapes that decode to invalid UTF-8 are rejected
// with ErrInvalidInput.
func DecodeURIComponent(s string) (string, error) {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !utf8.ValidString(decoded) {
		return "", fmt.Errorf("%w: malformed URI sequence %q", ErrInvalidInput, s)
	}
	return decoded, nil
}

// ResolvePath returns the absolute, cleaned form of p. Relative paths are
// resolved against root; absolute paths are taken as they are.
func ResolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// IsWithinRoot reports whether the absolute path p is root itself or lies
// below it. Both arguments must be absolute and cleaned.
func IsWithinRoot(root, p string) bool {
	if p == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}
