// internal/interest/interest.go

// Package interest tracks which register ranges API callers currently
// care about. The worker polls only ranges with recent interest; a range
// nobody has read for the idle timeout stops being refreshed.
package interest

import (
	"sort"
	"sync"
	"time"
)

// Range is an inclusive address span, Start <= End.
type Range struct {
	Start uint16
	End   uint16
}

// Tracker records interest per exact range with a last-access timestamp.
// Ranges are compared by (start, end) equality, never merged at touch
// time: repeated reads of the same range refresh one entry, different
// ranges create distinct entries.
type Tracker struct {
	mu      sync.Mutex
	timeout time.Duration
	entries map[Range]time.Time
	now     func() time.Time
}

func NewTracker(timeout time.Duration) *Tracker {
	return &Tracker{
		timeout: timeout,
		entries: make(map[Range]time.Time),
		now:     time.Now,
	}
}

// Touch creates or refreshes the entry for exactly this range.
func (t *Tracker) Touch(start, end uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[Range{Start: start, End: end}] = t.now()
}

// Window evicts every entry idle longer than the timeout, then returns
// the min(start)..max(end) span over the remaining entries. The second
// return is false when no live entries remain.
//
// The span deliberately covers the gaps between disjoint interests:
// entries (0,1) and (100,101) yield the window (0,101). See Windows for
// the disjoint alternative.
func (t *Tracker) Window() (Range, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.evict()
	if len(t.entries) == 0 {
		return Range{}, false
	}

	first := true
	var w Range
	for r := range t.entries {
		if first {
			w = r
			first = false
			continue
		}
		if r.Start < w.Start {
			w.Start = r.Start
		}
		if r.End > w.End {
			w.End = r.End
		}
	}
	return w, true
}

// Windows evicts idle entries and returns the live ranges merged where
// they touch or overlap, in ascending address order. Used by the optional
// disjoint polling mode.
func (t *Tracker) Windows() []Range {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.evict()
	if len(t.entries) == 0 {
		return nil
	}

	ranges := make([]Range, 0, len(t.entries))
	for r := range t.entries {
		ranges = append(ranges, r)
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End < ranges[j].End
	})

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End || (last.End < 0xFFFF && r.Start == last.End+1) {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// evict drops entries older than the timeout. Caller holds the lock.
func (t *Tracker) evict() {
	cutoff := t.now().Add(-t.timeout)
	for r, at := range t.entries {
		if at.Before(cutoff) {
			delete(t.entries, r)
		}
	}
}
