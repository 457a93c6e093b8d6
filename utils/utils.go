package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewSessionID returns an opaque session identifier
func NewSessionID() string {
	return uuid.NewString()
}

// NormalizeImage strips a data-URL prefix from a base64 image payload if one
// is present. Capture devices produce "data:image/jpeg;base64,..." strings,
// the recognition sidecar wants the bare encoding.
func NormalizeImage(image string) string {
	if idx := strings.Index(image, ","); idx >= 0 && strings.HasPrefix(image, "data:") {
		return image[idx+1:]
	}
	return image
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}
