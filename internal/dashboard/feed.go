package dashboard

import (
	"sync"
	"time"
)

// DefaultFeedCapacity bounds the activity feed when no limit is configured.
const DefaultFeedCapacity = 200

// Feed sources.
const (
	SourceSystem = "SYS"
	SourceIngest = "INGEST"
	SourceScout  = "SCOUT"
)

// FeedEntry is one line of the activity feed.
type FeedEntry struct {
	Time    time.Time
	Source  string
	Message string
	Level   string
}

// Feed is a fixed-capacity ring of feed entries. Once full, the oldest
// entry is overwritten.
type Feed struct {
	mu           sync.RWMutex
	entries      []FeedEntry
	capacity     int
	head         int
	count        int
	totalWritten int
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultFeedCapacity
	}
	return &Feed{
		entries:  make([]FeedEntry, capacity),
		capacity: capacity,
	}
}

func (f *Feed) Append(e FeedEntry) {
	f.mu.Lock()
	f.entries[f.head] = e
	f.head = (f.head + 1) % f.capacity
	if f.count < f.capacity {
		f.count++
	}
	f.totalWritten++
	f.mu.Unlock()
}

// Newest returns the retained entries, most recent first.
func (f *Feed) Newest() []FeedEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.count == 0 {
		return nil
	}
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - 1 - i + f.capacity) % f.capacity
		result[i] = f.entries[idx]
	}
	return result
}

func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.count
}

func (f *Feed) Capacity() int { return f.capacity }

func (f *Feed) TotalWritten() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.totalWritten
}

func (f *Feed) Reset() {
	f.mu.Lock()
	f.head = 0
	f.count = 0
	f.totalWritten = 0
	clear(f.entries)
	f.mu.Unlock()
}
