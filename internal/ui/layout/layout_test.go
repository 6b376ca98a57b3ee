package layout

import "testing"

func TestTooSmall(t *testing.T) {
	for _, sz := range [][2]int{{79, 24}, {80, 23}, {0, 0}} {
		if l := Calculate(sz[0], sz[1]); !l.TooSmall {
			t.Errorf("expected TooSmall for %dx%d", sz[0], sz[1])
		}
	}
}

func checkSums(t *testing.T, l Layout, w, h int) {
	t.Helper()
	if got := l.HeaderHeight + l.IngestHeight + l.FeedHeight + 1; got != h {
		t.Errorf("height: header(%d) + actions(%d) + feed(%d) + 1 = %d, want %d",
			l.HeaderHeight, l.IngestHeight, l.FeedHeight, got, h)
	}
	if l.IngestWidth+l.ScoutWidth != w {
		t.Errorf("width: ingest(%d) + scout(%d) = %d, want %d",
			l.IngestWidth, l.ScoutWidth, l.IngestWidth+l.ScoutWidth, w)
	}
	if l.IngestHeight != l.ScoutHeight {
		t.Errorf("action row panels should share a height: %d vs %d", l.IngestHeight, l.ScoutHeight)
	}
	if l.HeaderWidth != w || l.FeedWidth != w || l.StatusBarWidth != w {
		t.Errorf("full-width panels: header=%d feed=%d status=%d, want %d",
			l.HeaderWidth, l.FeedWidth, l.StatusBarWidth, w)
	}
}

func TestMinimumViable(t *testing.T) {
	l := Calculate(80, 24)
	if l.TooSmall {
		t.Fatal("80x24 should not be too small")
	}
	checkSums(t, l, 80, 24)
	if l.FeedHeight < 3 {
		t.Errorf("feed too short to show an entry: %d", l.FeedHeight)
	}
}

func TestStandard120x40(t *testing.T) {
	l := Calculate(120, 40)
	if l.TooSmall {
		t.Fatal("120x40 should not be too small")
	}
	checkSums(t, l, 120, 40)

	usable := float64(40 - 1 - HeaderHeight)
	if want := int(usable * ActionRowWeight); l.IngestHeight != want {
		t.Errorf("action row height: got %d, want %d", l.IngestHeight, want)
	}
	if want := int(120 * IngestColWeight); l.IngestWidth != want {
		t.Errorf("ingest width: got %d, want %d", l.IngestWidth, want)
	}
}
