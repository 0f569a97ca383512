package gallery

import (
	"path"
	"strings"
)

// DefaultContentType is served for extensions missing from the registry and
// for every plain-text error body.
const DefaultContentType = "text/plain; charset=utf-8"

// JSONContentType is the content type of every listing response.
const JSONContentType = "application/json; charset=utf-8"

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".json": JSONContentType,
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
}

// ContentTypeByExtension returns the registered content type for ext.
// The lookup is case-sensitive; unknown extensions get DefaultContentType.
func ContentTypeByExtension(ext string) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return DefaultContentType
}

// IsImageFile reports whether name carries one of the image extensions,
// compared case-insensitively.
func IsImageFile(name string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(name))]
	return ok
}
