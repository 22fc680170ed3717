package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	uploadBatchesTotal   atomic.Uint64
	uploadFilesTotal     atomic.Uint64
	uploadFailuresTotal  atomic.Uint64
	webhookFailuresTotal atomic.Uint64
	scoringRunsTotal     atomic.Uint64

	uploadDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncUploadBatch increments the upload batch counter.
func IncUploadBatch() {
	uploadBatchesTotal.Add(1)
}

// AddUploadFiles adds processed file counts to the files counter.
func AddUploadFiles(n int) {
	if n > 0 {
		uploadFilesTotal.Add(uint64(n))
	}
}

// IncUploadFailure increments the per-file upload failure counter.
func IncUploadFailure() {
	uploadFailuresTotal.Add(1)
}

// IncWebhookFailure increments the webhook failure counter.
func IncWebhookFailure() {
	webhookFailuresTotal.Add(1)
}

// IncScoringRun increments the scoring run counter.
func IncScoringRun() {
	scoringRunsTotal.Add(1)
}

// ObserveUploadDurationMs records a batch upload duration in milliseconds.
func ObserveUploadDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	uploadDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "upload_batches_total", "Total resume upload batches", uploadBatchesTotal.Load())
	writeCounter(&buf, "upload_files_total", "Total resume files processed", uploadFilesTotal.Load())
	writeCounter(&buf, "upload_failures_total", "Total per-file upload failures", uploadFailuresTotal.Load())
	writeCounter(&buf, "webhook_failures_total", "Total automation webhook failures", webhookFailuresTotal.Load())
	writeCounter(&buf, "scoring_runs_total", "Total scoring runs", scoringRunsTotal.Load())
	writeHistogram(&buf, "upload_duration_ms", "Upload batch duration in milliseconds", uploadDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
