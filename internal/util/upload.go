package util

import (
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var unsafeFileNameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// SanitizeFileName replaces every character outside [a-zA-Z0-9._-] with "_".
func SanitizeFileName(name string) string {
	return unsafeFileNameChars.ReplaceAllString(name, "_")
}

// ContentType returns the declared media type of an upload, sniffing the
// content when the client sent none or a generic octet-stream.
func ContentType(declared string, data []byte) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	media := mimetype.Detect(data).String()
	if i := strings.IndexByte(media, ';'); i >= 0 {
		media = media[:i]
	}
	return media
}
