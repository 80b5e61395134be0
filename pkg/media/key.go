package media

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeName replaces every character outside [A-Za-z0-9._-] with an underscore.
func SanitizeName(name string) string {
	return unsafeKeyChars.ReplaceAllString(name, "_")
}

// BuildKey returns {namespace}/{unixMillis}_{sanitizedName}.{ext}. The original extension
// is replaced by the output format's. Keys are traceable, not content-addressed: the same
// bytes uploaded twice get two keys.
func BuildKey(namespace, originalName string, format Format, now time.Time) string {
	base := path.Base(strings.ReplaceAll(originalName, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := SanitizeName(base)
	if strings.Trim(name, "._") == "" {
		name = "image"
	}

	key := fmt.Sprintf("%d_%s.%s", now.UnixMilli(), name, format.Extension())
	if ns := strings.Trim(namespace, "/"); ns != "" {
		key = ns + "/" + key
	}
	return key
}

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".gif":  true,
	}
)

// IsAllowedUpload checks the declared content type and file extension of an upload.
func IsAllowedUpload(contentType, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedMimeTypes[strings.ToLower(contentType)] && allowedExtensions[ext]
}
