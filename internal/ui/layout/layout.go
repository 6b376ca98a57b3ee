package layout

// Layout holds the computed cell dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	// Server status strip
	HeaderWidth  int
	HeaderHeight int

	// Action row
	IngestWidth  int
	IngestHeight int
	ScoutWidth   int
	ScoutHeight  int

	// Activity feed
	FeedWidth  int
	FeedHeight int

	// Status bar
	StatusBarWidth int
}

const (
	MinWidth  = 80
	MinHeight = 24

	// HeaderHeight fits the availability line and the path pills.
	HeaderHeight = 4

	ActionRowWeight = 0.62
	IngestColWeight = 0.45
)

// Calculate computes panel dimensions from terminal size.
// The header and the status bar have fixed heights; the rest is split
// between the action row and the activity feed.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	usableHeight := termHeight - 1 - HeaderHeight // status bar, header

	actionHeight := int(float64(usableHeight) * ActionRowWeight)
	feedHeight := usableHeight - actionHeight

	ingestWidth := int(float64(termWidth) * IngestColWeight)
	scoutWidth := termWidth - ingestWidth

	l.HeaderWidth = termWidth
	l.HeaderHeight = HeaderHeight

	l.IngestWidth = ingestWidth
	l.IngestHeight = actionHeight
	l.ScoutWidth = scoutWidth
	l.ScoutHeight = actionHeight

	l.FeedWidth = termWidth
	l.FeedHeight = feedHeight

	l.StatusBarWidth = termWidth

	return l
}
