// Package observability exposes Prometheus metrics for domain operations.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ImageIngestTotal counts image-ingest pipeline outcomes.
	ImageIngestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tagboard_image_ingest_total",
		Help: "Total number of image ingest attempts by outcome",
	}, []string{"outcome"})

	// ImageUploadBytes records compressed image sizes sent to object storage.
	ImageUploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tagboard_image_upload_bytes",
		Help:    "Size in bytes of compressed images uploaded to object storage",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	// PostsCreatedTotal counts successfully persisted posts.
	PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tagboard_posts_created_total",
		Help: "Total number of posts created",
	})
)
