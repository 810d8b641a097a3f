// Package progress provides the bounded-history sink that surfaces the
// state of an in-flight generation run.
package progress

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxLogEntries caps the message log; the oldest entry is evicted first.
const MaxLogEntries = 7

// Phase boundaries for the overall percent scale: 0-25% setup,
// 25-80% slide content, 80-100% finishing work.
const (
	slidePhaseStart = 25.0
	slidePhaseSpan  = 55.0
)

// Event is one progress report. Counter fields are written to the
// reporter unconditionally; callers are expected, not required, to
// report non-decreasing percent values.
type Event struct {
	Percent      float64 `json:"percent"`
	Message      string  `json:"message"`
	CurrentSlide int     `json:"current_slide,omitempty"`
	TotalSlides  int     `json:"total_slides,omitempty"`
	CurrentImage int     `json:"current_image,omitempty"`
	TotalImages  int     `json:"total_images,omitempty"`
}

// Sink receives progress events during pipeline execution.
type Sink interface {
	Report(e Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(e Event)

// Report implements Sink.
func (f SinkFunc) Report(e Event) { f(e) }

// LogEntry is one line of the scrolling status log.
type LogEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is a read-only view of a reporter.
type Snapshot struct {
	Percent      float64    `json:"percent"`
	Log          []LogEntry `json:"log"`
	CurrentSlide int        `json:"current_slide"`
	TotalSlides  int        `json:"total_slides"`
	CurrentImage int        `json:"current_image"`
	TotalImages  int        `json:"total_images"`
}

// Reporter is a Sink keeping the last MaxLogEntries messages and four
// live counters. It is safe for concurrent use: the pipeline writes
// while the serving layer reads snapshots.
type Reporter struct {
	mu           sync.Mutex
	percent      float64
	log          []LogEntry
	currentSlide int
	totalSlides  int
	currentImage int
	totalImages  int
	forward      Sink
	now          func() time.Time
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{now: time.Now}
}

// NewForwardingReporter creates a reporter that additionally forwards
// every event to next (used to stream events while keeping the log).
func NewForwardingReporter(next Sink) *Reporter {
	return &Reporter{now: time.Now, forward: next}
}

// Report implements Sink.
func (r *Reporter) Report(e Event) {
	r.mu.Lock()
	r.percent = e.Percent
	r.currentSlide = e.CurrentSlide
	r.totalSlides = e.TotalSlides
	r.currentImage = e.CurrentImage
	r.totalImages = e.TotalImages
	if e.Message != "" {
		r.log = append(r.log, LogEntry{
			ID:        uuid.NewString(),
			Text:      e.Message,
			Timestamp: r.now(),
		})
		if len(r.log) > MaxLogEntries {
			r.log = r.log[len(r.log)-MaxLogEntries:]
		}
	}
	forward := r.forward
	r.mu.Unlock()

	if forward != nil {
		forward.Report(e)
	}
}

// Snapshot returns a copy of the current state.
func (r *Reporter) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]LogEntry, len(r.log))
	copy(entries, r.log)
	return Snapshot{
		Percent:      r.percent,
		Log:          entries,
		CurrentSlide: r.currentSlide,
		TotalSlides:  r.totalSlides,
		CurrentImage: r.currentImage,
		TotalImages:  r.totalImages,
	}
}

// SlideProgress maps slide-building progress into the 25-80% band of
// the overall scale.
func SlideProgress(current, total int) float64 {
	if total <= 0 {
		return slidePhaseStart
	}
	ratio := float64(current) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	p := slidePhaseStart + slidePhaseSpan*ratio
	if p < slidePhaseStart {
		return slidePhaseStart
	}
	if p > slidePhaseStart+slidePhaseSpan {
		return slidePhaseStart + slidePhaseSpan
	}
	return p
}
