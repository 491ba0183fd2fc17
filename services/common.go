package services

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Used when the payload is not recognisable as an image.
const defaultImageMIMEType = "image/jpeg"

func StrPointer(str string) *string {
	if str == "" {
		return nil
	}
	return &str
}

func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// DetectImageMIME sniffs the image type from its first bytes.
func DetectImageMIME(data []byte) string {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return defaultImageMIMEType
	}
	return mimeType
}

// DecodeImages decodes the base64 photos in parallel, keeping their order.
func DecodeImages(images []string) ([]VisionImage, error) {
	decoded := make([]VisionImage, len(images))
	g := new(errgroup.Group)
	for i, payload := range images {
		g.Go(func() error {
			data, err := base64.StdEncoding.DecodeString(payload)
			if err != nil {
				return fmt.Errorf("image %d is not valid base64: %w", i+1, err)
			}
			decoded[i] = VisionImage{Data: data, MIMEType: DetectImageMIME(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decoded, nil
}
