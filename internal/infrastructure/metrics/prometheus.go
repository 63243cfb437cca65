package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ImageMetrics counts object store calls made for listing images.
type ImageMetrics struct {
	Uploads          prometheus.Counter
	UploadFailures   prometheus.Counter
	Deletions        prometheus.Counter
	DeletionFailures prometheus.Counter
}

// NewImageMetrics registers the image counters on registerer.
func NewImageMetrics(namespace string, registerer prometheus.Registerer) *ImageMetrics {
	m := &ImageMetrics{
		Uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_uploads_total",
			Help:      "Total number of images uploaded to the object store.",
		}),
		UploadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_upload_failures_total",
			Help:      "Total number of failed image uploads.",
		}),
		Deletions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_deletions_total",
			Help:      "Total number of images deleted from the object store.",
		}),
		DeletionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_deletion_failures_total",
			Help:      "Total number of failed best-effort image deletions.",
		}),
	}

	registerer.MustRegister(m.Uploads, m.UploadFailures, m.Deletions, m.DeletionFailures)
	return m
}

func (m *ImageMetrics) ObserveUpload(ok bool) {
	if ok {
		m.Uploads.Inc()
		return
	}
	m.UploadFailures.Inc()
}

func (m *ImageMetrics) ObserveDelete(ok bool) {
	if ok {
		m.Deletions.Inc()
		return
	}
	m.DeletionFailures.Inc()
}
