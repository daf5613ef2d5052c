package media

import "strings"

// SupportedMIME reports whether a MIME type belongs to one of the two media
// families this tool sorts. image/vnd.fpx is excluded because Windows writes
// Thumbs.db files with that type.
func SupportedMIME(mimeType string) bool {
	return hasMIMEPrefix(mimeType, "video") ||
		(hasMIMEPrefix(mimeType, "image") && !strings.Contains(strings.ToLower(mimeType), "vnd.fpx"))
}

func hasMIMEPrefix(mimeType, family string) bool {
	return strings.HasPrefix(strings.ToLower(mimeType), family)
}
