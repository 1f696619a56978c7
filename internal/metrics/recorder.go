package metrics

import (
	"time"
)

// Recorder provides methods for recording pipeline metrics.
type Recorder struct{}

// NewRecorder creates a new metrics recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordCandle records one processed candle.
func (r *Recorder) RecordCandle(symbol, source string) {
	CandlesTotal.WithLabelValues(symbol, source).Inc()
}

// RecordColumn records the latest reading of a panel column.
func (r *Recorder) RecordColumn(column string, value float64, ready bool) {
	if !ready {
		ColumnReady.WithLabelValues(column).Set(0)
		return
	}
	ColumnValue.WithLabelValues(column).Set(value)
	ColumnReady.WithLabelValues(column).Set(1)
}

// RecordAdvance records how long one panel advance took.
func (r *Recorder) RecordAdvance(d time.Duration) {
	AdvanceDuration.Observe(d.Seconds())
}

// RecordAlert records a fired alert.
func (r *Recorder) RecordAlert(severity string) {
	AlertsTotal.WithLabelValues(severity).Inc()
}

// RecordFeedError records a feed failure.
func (r *Recorder) RecordFeedError(source string) {
	FeedErrorsTotal.WithLabelValues(source).Inc()
}

// RecordSnapshotStored records one persisted snapshot row.
func (r *Recorder) RecordSnapshotStored() {
	SnapshotsStored.Inc()
}

// Timer is a helper for measuring latency.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed duration.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// ObserveAdvance observes the elapsed time as a panel advance.
func (t *Timer) ObserveAdvance() {
	AdvanceDuration.Observe(t.Elapsed().Seconds())
}
