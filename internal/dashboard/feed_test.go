package dashboard

import (
	"fmt"
	"sync"
	"testing"
)

func entry(msg string) FeedEntry {
	return FeedEntry{Source: SourceSystem, Message: msg, Level: "log"}
}

func TestFeedNewestFirst(t *testing.T) {
	f := NewFeed(10)

	f.Append(entry("one"))
	f.Append(entry("two"))
	f.Append(entry("three"))

	got := f.Newest()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	want := []string{"three", "two", "one"}
	for i, w := range want {
		if got[i].Message != w {
			t.Errorf("entry %d: expected %q, got %q", i, w, got[i].Message)
		}
	}
}

func TestFeedOverflowDropsOldest(t *testing.T) {
	f := NewFeed(3)
	for _, m := range []string{"a", "b", "c", "d", "e"} {
		f.Append(entry(m))
	}

	got := f.Newest()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries (capacity), got %d", len(got))
	}
	if got[0].Message != "e" || got[2].Message != "c" {
		t.Errorf("expected e..c, got %q..%q", got[0].Message, got[2].Message)
	}
	if f.TotalWritten() != 5 {
		t.Errorf("expected total written 5, got %d", f.TotalWritten())
	}
}

func TestFeedDefaultCapacity(t *testing.T) {
	f := NewFeed(0)
	if f.Capacity() != DefaultFeedCapacity {
		t.Errorf("expected capacity %d, got %d", DefaultFeedCapacity, f.Capacity())
	}
	for i := 0; i < DefaultFeedCapacity+50; i++ {
		f.Append(entry(fmt.Sprintf("entry %d", i)))
	}
	if f.Len() != DefaultFeedCapacity {
		t.Errorf("expected feed capped at %d, got %d", DefaultFeedCapacity, f.Len())
	}
	if got := f.Newest()[0].Message; got != "entry 249" {
		t.Errorf("expected newest 'entry 249', got %q", got)
	}
}

func TestFeedReset(t *testing.T) {
	f := NewFeed(4)
	f.Append(entry("x"))
	f.Append(entry("y"))
	f.Reset()

	if f.Len() != 0 {
		t.Errorf("expected empty feed after reset, got %d", f.Len())
	}
	if f.Newest() != nil {
		t.Error("expected nil entries after reset")
	}
	f.Append(entry("z"))
	if got := f.Newest(); len(got) != 1 || got[0].Message != "z" {
		t.Errorf("expected only 'z' after reset, got %+v", got)
	}
}

func TestFeedConcurrentAccess(t *testing.T) {
	f := NewFeed(100)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Append(entry(fmt.Sprintf("g%d-%d", n, j)))
			}
		}(i)
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = f.Newest()
				_ = f.Len()
			}
		}()
	}
	wg.Wait()

	if f.Len() != 100 {
		t.Errorf("expected 100 entries, got %d", f.Len())
	}
	if f.TotalWritten() != 1000 {
		t.Errorf("expected 1000 total written, got %d", f.TotalWritten())
	}
}
