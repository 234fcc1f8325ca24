package loader

import (
	"image"
	"strings"
)

// Content is what Draw renders: a decoded image or a placeholder caption
type Content struct {
	Image   image.Image
	Caption string
}

// Caption returns placeholder content
func Caption(text string) Content {
	return Content{Caption: text}
}

// Picture returns image content
func Picture(img image.Image) Content {
	return Content{Image: img}
}

// Translation keys used for placeholders
const (
	KeyLoading = "loading"
	KeyError   = "error"
)

var defaultTexts = map[string]string{
	KeyLoading: "Loading...",
	KeyError:   "Error!",
}

// fileName returns the last path segment of a URL without its query
func fileName(src string) string {
	parts := strings.Split(src, "/")
	name := parts[len(parts)-1]
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	return name
}
