// Package measure collects opt-in size and timing telemetry for the
// CLI and the block simulation harness. It is disabled unless the
// DILITHIUM_MEASURE environment variable is set to 1, so the
// cryptographic core never pays for it.
package measure

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var Enabled bool
var Global Counter

func init() {
	Enabled = os.Getenv("DILITHIUM_MEASURE") == "1"
	Global = Counter{M: make(map[string]int64)}
}

// Human renders a byte count for report output.
func Human(n int64) string {
	const (
		KiB = 1024
		MiB = 1024 * KiB
	)
	switch {
	case n >= MiB:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(MiB))
	case n >= KiB:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Counter accumulates named int64 tallies (byte counts, nanoseconds,
// retry totals) behind a mutex.
type Counter struct {
	mu sync.Mutex
	M  map[string]int64
}

// Add increases a tally when measurement is enabled.
func (c *Counter) Add(key string, n int64) {
	if !Enabled {
		return
	}
	c.mu.Lock()
	c.M[key] += n
	c.mu.Unlock()
}

// AddDuration records an elapsed time in nanoseconds.
func (c *Counter) AddDuration(key string, d time.Duration) {
	c.Add(key, int64(d))
}

// SnapshotAndReset returns the current tallies and clears them.
func (c *Counter) SnapshotAndReset() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.M
	c.M = make(map[string]int64)
	return out
}

// Dump prints the current tallies to stdout.
func (c *Counter) Dump() {
	if !Enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Println("[measure] report:")
	for k, v := range c.M {
		fmt.Printf("[measure] %s = %d\n", k, v)
	}
}

// Time runs f and records its wall time under key.
func Time(key string, f func()) {
	if !Enabled {
		f()
		return
	}
	start := time.Now()
	f()
	Global.AddDuration(key, time.Since(start))
}
