package fetch

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DetectType sniffs the media type of fetched bytes
func DetectType(data []byte) string {
	return mimetype.Detect(data).String()
}

// DecodeImage decodes page bytes into a bitmap. Non-image payloads are
// rejected before decoding.
func DecodeImage(data []byte) (image.Image, string, error) {
	mediaType := DetectType(data)
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, mediaType, fmt.Errorf("unsupported media type %s", mediaType)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, mediaType, fmt.Errorf("failed to decode %s: %w", mediaType, err)
	}
	return img, mediaType, nil
}
