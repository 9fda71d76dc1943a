package constants

import "strings"

// MediaKind is the detected input media family for a document.
type MediaKind string

const (
	PDF   MediaKind = "PDF"
	IMAGE MediaKind = "IMAGE"
)

// AllowedExtensions holds the default allowed file extensions for document
// ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"bmp":  {},
	"tif":  {},
	"tiff": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToKind resolves a (dotted or bare) extension to its media kind.
// Returns "" for unsupported extensions.
func MapExtToKind(ext string) MediaKind {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png", "bmp", "tif", "tiff":
		return IMAGE
	default:
		return ""
	}
}
