package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"strings"
)

// Supported encodings
const (
	TypePNG  = "image/png"
	TypeJPEG = "image/jpeg"

	DefaultJPEGQuality = 0.92
)

// Encode serializes the surface. An empty media type means PNG; quality in
// (0, 1] applies to JPEG only.
func (s *Surface) Encode(mediaType string, quality float64) ([]byte, string, error) {
	var buf bytes.Buffer
	switch mediaType {
	case "", TypePNG:
		if err := png.Encode(&buf, s.img); err != nil {
			return nil, "", fmt.Errorf("failed to encode png: %w", err)
		}
		return buf.Bytes(), TypePNG, nil
	case TypeJPEG:
		if quality <= 0 || quality > 1 {
			quality = DefaultJPEGQuality
		}
		if err := jpeg.Encode(&buf, s.img, &jpeg.Options{Quality: int(quality * 100)}); err != nil {
			return nil, "", fmt.Errorf("failed to encode jpeg: %w", err)
		}
		return buf.Bytes(), TypeJPEG, nil
	default:
		// unsupported types fall back to PNG
		return s.Encode(TypePNG, 0)
	}
}

// DataURL encodes the surface as a base64 data URL
func (s *Surface) DataURL(mediaType string, quality float64) (string, error) {
	data, actual, err := s.Encode(mediaType, quality)
	if err != nil {
		return "", err
	}
	return "data:" + actual + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURL splits a base64 data URL into its bytes and media type
func DecodeDataURL(url string) ([]byte, string, error) {
	header, payload, found := strings.Cut(url, ",")
	if !found || !strings.HasPrefix(header, "data:") {
		return nil, "", fmt.Errorf("malformed data url")
	}
	mediaType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data url: %w", err)
	}
	return data, mediaType, nil
}
