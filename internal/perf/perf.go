// Package perf keeps render timings and counters in memory and writes
// summaries to the log. Nothing is collected unless CONSOLEUI_PROFILE is set
// or Configure turns collection on.
package perf

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xanthalas/consoleui/internal/logging"
)

const (
	// EnvProfile switches collection on (1, true, yes, on).
	EnvProfile = "CONSOLEUI_PROFILE"
	// EnvReportMs sets how often summaries are logged while collecting.
	EnvReportMs = "CONSOLEUI_PROFILE_INTERVAL_MS"

	ringSize           = 128
	defaultReportEvery = 5 * time.Second
)

// Timing summarises one named duration series since the last report.
// Percentiles cover the most recent samples only.
type Timing struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	P50   time.Duration
	P95   time.Duration
}

// Counter is the total added to one named counter since the last report.
type Counter struct {
	Name  string
	Value int64
}

// Report is a point-in-time view of a Registry, sorted by name.
type Report struct {
	Timings  []Timing
	Counters []Counter
}

// Empty reports whether nothing was recorded.
func (r Report) Empty() bool {
	return len(r.Timings) == 0 && len(r.Counters) == 0
}

type series struct {
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
	ring  [ringSize]time.Duration
	next  int
}

func (s *series) add(d time.Duration) {
	if s.count == 0 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.count++
	s.total += d
	s.ring[s.next%ringSize] = d
	s.next++
}

func (s *series) timing(name string) Timing {
	n := min(s.next, ringSize)
	recent := make([]time.Duration, n)
	copy(recent, s.ring[:n])
	sort.Slice(recent, func(i, j int) bool { return recent[i] < recent[j] })
	return Timing{
		Name:  name,
		Count: s.count,
		Avg:   s.total / time.Duration(s.count),
		Min:   s.min,
		Max:   s.max,
		P50:   percentile(recent, 0.50),
		P95:   percentile(recent, 0.95),
	}
}

// percentile returns the nearest-rank percentile of sorted samples.
func percentile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(q*float64(len(sorted)))) - 1
	rank = max(0, min(rank, len(sorted)-1))
	return sorted[rank]
}

// Registry collects timings and counters. Every method is safe for
// concurrent use; when collection is off they return immediately.
type Registry struct {
	on atomic.Bool

	mu       sync.Mutex
	series   map[string]*series
	counters map[string]int64
	every    time.Duration
	last     time.Time
	now      func() time.Time
}

// NewRegistry returns a registry that logs a summary at most once per every.
// A non-positive every disables periodic summaries; Flush still logs.
func NewRegistry(on bool, every time.Duration) *Registry {
	r := &Registry{
		series:   map[string]*series{},
		counters: map[string]int64{},
		every:    every,
		now:      time.Now,
	}
	r.on.Store(on)
	return r
}

func (r *Registry) Enabled() bool { return r.on.Load() }

// Configure switches collection and, when every is positive, changes the
// summary interval.
func (r *Registry) Configure(on bool, every time.Duration) {
	r.on.Store(on)
	if every > 0 {
		r.mu.Lock()
		r.every = every
		r.mu.Unlock()
	}
}

// Time starts a measurement; call the returned func to record it.
func (r *Registry) Time(name string) func() {
	if !r.Enabled() {
		return func() {}
	}
	start := r.now()
	return func() {
		r.Record(name, r.now().Sub(start))
	}
}

func (r *Registry) Record(name string, d time.Duration) {
	if !r.Enabled() {
		return
	}
	r.mu.Lock()
	s, ok := r.series[name]
	if !ok {
		s = &series{}
		r.series[name] = s
	}
	s.add(d)
	report, due := r.takeIfDueLocked()
	r.mu.Unlock()
	if due {
		logReport("periodic", report)
	}
}

func (r *Registry) Count(name string, delta int64) {
	if !r.Enabled() {
		return
	}
	r.mu.Lock()
	r.counters[name] += delta
	report, due := r.takeIfDueLocked()
	r.mu.Unlock()
	if due {
		logReport("periodic", report)
	}
}

// takeIfDueLocked starts the interval on first use and hands back a report
// once it has elapsed.
func (r *Registry) takeIfDueLocked() (Report, bool) {
	if r.every <= 0 {
		return Report{}, false
	}
	now := r.now()
	if r.last.IsZero() {
		r.last = now
		return Report{}, false
	}
	if now.Sub(r.last) < r.every {
		return Report{}, false
	}
	r.last = now
	return r.takeLocked(), true
}

// Snapshot returns everything recorded since the last report and starts a
// new one.
func (r *Registry) Snapshot() Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.takeLocked()
}

func (r *Registry) takeLocked() Report {
	var report Report
	for name, s := range r.series {
		if s.count > 0 {
			report.Timings = append(report.Timings, s.timing(name))
		}
	}
	for name, v := range r.counters {
		if v != 0 {
			report.Counters = append(report.Counters, Counter{Name: name, Value: v})
		}
	}
	sort.Slice(report.Timings, func(i, j int) bool { return report.Timings[i].Name < report.Timings[j].Name })
	sort.Slice(report.Counters, func(i, j int) bool { return report.Counters[i].Name < report.Counters[j].Name })
	r.series = map[string]*series{}
	r.counters = map[string]int64{}
	return report
}

// Flush logs and clears whatever has been recorded, tagged with reason.
func (r *Registry) Flush(reason string) {
	if !r.Enabled() {
		return
	}
	logReport(reason, r.Snapshot())
}

func logReport(reason string, report Report) {
	if strings.TrimSpace(reason) == "" {
		reason = "summary"
	}
	for _, t := range report.Timings {
		logging.Info("perf %s: %s n=%d avg=%s p50=%s p95=%s min=%s max=%s",
			reason, t.Name, t.Count, t.Avg, t.P50, t.P95, t.Min, t.Max)
	}
	for _, c := range report.Counters {
		logging.Info("perf %s: %s=%d", reason, c.Name, c.Value)
	}
}

var std atomic.Pointer[Registry]

func init() {
	std.Store(NewRegistry(envEnabled(), envReportEvery()))
}

// Default returns the registry the package-level functions use.
func Default() *Registry { return std.Load() }

func Enabled() bool                          { return Default().Enabled() }
func Configure(on bool, every time.Duration) { Default().Configure(on, every) }
func Time(name string) func()                { return Default().Time(name) }
func Record(name string, d time.Duration)    { Default().Record(name, d) }
func Count(name string, delta int64)         { Default().Count(name, delta) }
func Snapshot() Report                       { return Default().Snapshot() }
func Flush(reason string)                    { Default().Flush(reason) }

func envEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvProfile))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func envReportEvery() time.Duration {
	raw := strings.TrimSpace(os.Getenv(EnvReportMs))
	if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultReportEvery
}
