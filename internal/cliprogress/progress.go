// Package cliprogress renders an in-place terminal progress bar, used for
// the chunk-build stage of the pipeline (spec §5).
package cliprogress

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Bar renders an in-place terminal progress bar for a pipeline stage. It
// refreshes at a fixed interval and supports concurrent Increment calls
// from multiple worker goroutines.
type Bar struct {
	total     int64
	processed atomic.Int64
	label     string
	unit      string
	barWidth  int
	start     time.Time
	done      chan struct{}
	mu        sync.Mutex
}

// New starts a progress bar labelled label, tracking total items measured
// in unit (e.g. "chunks", "regions", "tiles").
func New(label, unit string, total int64) *Bar {
	b := &Bar{
		total:    total,
		label:    label,
		unit:     unit,
		barWidth: 30,
		start:    time.Now(),
		done:     make(chan struct{}),
	}
	go b.run()
	return b
}

// Increment marks one more item as processed. Safe for concurrent use.
func (b *Bar) Increment() {
	b.processed.Add(1)
}

// Finish stops the refresh loop and prints the final bar state with a newline.
func (b *Bar) Finish() {
	close(b.done)
	b.draw()
	fmt.Fprint(os.Stderr, "\n")
}

func (b *Bar) run() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			b.draw()
		}
	}
}

func (b *Bar) draw() {
	b.mu.Lock()
	defer b.mu.Unlock()

	processed := b.processed.Load()
	total := b.total

	var frac float64
	if total > 0 {
		frac = float64(processed) / float64(total)
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(float64(b.barWidth) * frac)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", b.barWidth-filled)

	elapsed := time.Since(b.start)
	rate := float64(0)
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(processed) / secs
	}

	fmt.Fprintf(os.Stderr, "\r%s [%s] %3.0f%%  %d/%d %s  %.0f/s  %s\033[K",
		b.label, bar, frac*100, processed, total, b.unit, rate, formatDuration(elapsed))
}

// formatDuration formats a duration concisely (e.g. "1m23s", "45s", "0s").
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) - m*60
	return fmt.Sprintf("%dm%02ds", m, s)
}
