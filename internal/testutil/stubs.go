// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strconv"
	"time"
)

// ObjectStoreStub is an in-memory object store implementation for tests. It
// records uploads and produces deterministic signed URLs.
type ObjectStoreStub struct {
	PutErr     error
	PresignErr error

	Objects      map[string][]byte
	ContentTypes map[string]string
	Presigned    []string
}

// NewObjectStoreStub creates an empty in-memory object store stub.
func NewObjectStoreStub() *ObjectStoreStub {
	return &ObjectStoreStub{
		Objects:      make(map[string][]byte),
		ContentTypes: make(map[string]string),
	}
}

// Put records the upload in memory.
func (s *ObjectStoreStub) Put(_ context.Context, key string, body []byte, contentType string) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.Objects[key] = body
	s.ContentTypes[key] = contentType
	return nil
}

// PresignGet returns a deterministic signed URL for the key.
func (s *ObjectStoreStub) PresignGet(_ context.Context, key string, expiry time.Duration) (string, error) {
	if s.PresignErr != nil {
		return "", s.PresignErr
	}
	s.Presigned = append(s.Presigned, key)
	return "https://bucket.test.example/" + key + "?X-Amz-Expires=" + strconv.Itoa(int(expiry.Seconds())), nil
}

// Keys returns the stored object keys.
func (s *ObjectStoreStub) Keys() []string {
	keys := make([]string, 0, len(s.Objects))
	for k := range s.Objects {
		keys = append(keys, k)
	}
	return keys
}

// TinyPNG returns an in-memory PNG byte slice with the requested dimensions.
func TinyPNG(t interface {
	Helper()
	Fatalf(string, ...any)
}, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
