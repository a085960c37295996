package service

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif" // register GIF decoder
	_ "image/png" // register PNG decoder

	"tagboard/internal/models"
	"tagboard/internal/observability"
	"tagboard/internal/storage"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// ImageTargetWidth is the fixed output width; narrower images are never
	// upscaled.
	ImageTargetWidth = 1024
	// JPEGQuality is the fixed re-encode quality factor. Output is always
	// JPEG regardless of the uploaded format.
	JPEGQuality = 70

	imageKeyPrefix = "posts/"
)

// ImageService is the image-ingest pipeline: validate, compress, upload,
// sign. Steps run strictly sequentially within a request; there are no
// retries.
type ImageService struct {
	store storage.ObjectStore
}

// NewImageService creates an image service backed by the given object store.
func NewImageService(store storage.ObjectStore) *ImageService {
	return &ImageService{store: store}
}

// Ingest compresses the uploaded bytes and uploads them under a fresh random
// key, returning a presigned access URL. The returned URL is time-limited
// (storage.SignedURLTTL); callers persist the URL itself, so the stored
// reference is ephemeral.
func (s *ImageService) Ingest(ctx context.Context, filename string, content []byte) (string, error) {
	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		observability.ImageIngestTotal.WithLabelValues("invalid").Inc()
		return "", models.NewValidationError("Invalid image file")
	}

	resized := resizeToWidth(decoded, ImageTargetWidth)
	encoded, err := encodeJPEG(resized, JPEGQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	key := imageKeyPrefix + uuid.NewString() + "." + fileExt(filename)

	if err := s.store.Put(ctx, key, encoded, "image/jpeg"); err != nil {
		observability.ImageIngestTotal.WithLabelValues("storage_error").Inc()
		return "", models.NewStorageError("Failed to upload image", err)
	}

	signedURL, err := s.store.PresignGet(ctx, key, storage.SignedURLTTL)
	if err != nil {
		observability.ImageIngestTotal.WithLabelValues("storage_error").Inc()
		return "", models.NewStorageError("Failed to sign image URL", err)
	}

	observability.ImageIngestTotal.WithLabelValues("ok").Inc()
	observability.ImageUploadBytes.Observe(float64(len(encoded)))
	return signedURL, nil
}

// resizeToWidth scales src down to maxWidth preserving aspect ratio. Images
// already at or below maxWidth pass through untouched.
func resizeToWidth(src image.Image, maxWidth int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 || w <= maxWidth {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	newH := int(float64(h) * scale)
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fileExt returns the substring after the last dot of the filename, or the
// whole name when there is no dot. No content-type sniffing.
func fileExt(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return filename[idx+1:]
	}
	return filename
}
