package service

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"strings"
	"testing"

	"tagboard/internal/models"
	"tagboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageServiceIngestRejectsInvalidFile(t *testing.T) {
	store := testutil.NewObjectStoreStub()
	svc := NewImageService(store)

	_, err := svc.Ingest(context.Background(), "photo.png", []byte("not an image"))

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Equal(t, "Invalid image file", appErr.Message)
	assert.Empty(t, store.Objects, "nothing should be uploaded for invalid input")
}

func TestImageServiceIngestCompressesAndSigns(t *testing.T) {
	store := testutil.NewObjectStoreStub()
	svc := NewImageService(store)

	content := testutil.TinyPNG(t, 2048, 1000)
	url, err := svc.Ingest(context.Background(), "photo.png", content)
	require.NoError(t, err)

	keys := store.Keys()
	require.Len(t, keys, 1)
	key := keys[0]

	assert.True(t, strings.HasPrefix(key, "posts/"), "key %q should live under posts/", key)
	assert.True(t, strings.HasSuffix(key, ".png"), "key %q should keep the upload extension", key)
	assert.Equal(t, "image/jpeg", store.ContentTypes[key])

	// The stored object is always JPEG, resized to the target width.
	img, err := jpeg.Decode(bytes.NewReader(store.Objects[key]))
	require.NoError(t, err)
	assert.Equal(t, ImageTargetWidth, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())

	assert.Contains(t, url, key)
	assert.Contains(t, url, "X-Amz-Expires=3600", "signed URL should expire after one hour")
}

func TestImageServiceIngestDoesNotUpscale(t *testing.T) {
	store := testutil.NewObjectStoreStub()
	svc := NewImageService(store)

	_, err := svc.Ingest(context.Background(), "small.png", testutil.TinyPNG(t, 100, 80))
	require.NoError(t, err)

	keys := store.Keys()
	require.Len(t, keys, 1)

	img, err := jpeg.Decode(bytes.NewReader(store.Objects[keys[0]]))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestImageServiceIngestKeyWithoutExtension(t *testing.T) {
	store := testutil.NewObjectStoreStub()
	svc := NewImageService(store)

	_, err := svc.Ingest(context.Background(), "upload", testutil.TinyPNG(t, 10, 10))
	require.NoError(t, err)

	keys := store.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasSuffix(keys[0], ".upload"))
}

func TestImageServiceIngestUploadFailure(t *testing.T) {
	store := testutil.NewObjectStoreStub()
	store.PutErr = errors.New("bucket unavailable")
	svc := NewImageService(store)

	_, err := svc.Ingest(context.Background(), "photo.png", testutil.TinyPNG(t, 10, 10))

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeStorage, appErr.Code)
	assert.Equal(t, "Failed to upload image", appErr.Message)
}

func TestImageServiceIngestSignFailure(t *testing.T) {
	store := testutil.NewObjectStoreStub()
	store.PresignErr = errors.New("signing key rejected")
	svc := NewImageService(store)

	_, err := svc.Ingest(context.Background(), "photo.png", testutil.TinyPNG(t, 10, 10))

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeStorage, appErr.Code)
	assert.Equal(t, "Failed to sign image URL", appErr.Message)
	assert.Len(t, store.Objects, 1, "upload happens before signing")
}
