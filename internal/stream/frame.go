package stream

import (
	"encoding/json"
	"strings"
)

const (
	// DefaultEventType is assigned to frames that carry no "event:" line.
	DefaultEventType = "log"
	// DoneEventType is the sentinel the server sends after its last frame.
	DoneEventType = "done"

	delimiter = "\n\n"
)

// Frame is one delimited unit of an event stream.
type Frame struct {
	EventType string
	Data      json.RawMessage
}

// Decode unmarshals the frame payload into v.
func (f Frame) Decode(v any) error {
	return json.Unmarshal(f.Data, v)
}

// Message returns the payload's "message" field, or "" when the payload is
// not an object or has no string message.
func (f Frame) Message() string {
	var p struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(f.Data, &p); err != nil {
		return ""
	}
	return p.Message
}

// Tokenize appends chunk to buffer and splits off every complete frame.
// It returns the frames that parsed successfully, in stream order, and the
// unterminated remainder to pass back in on the next call.
func Tokenize(buffer, chunk string) ([]Frame, string) {
	return tokenize(buffer, chunk, nil)
}

func tokenize(buffer, chunk string, dropped func(candidate string)) ([]Frame, string) {
	text := buffer + chunk
	var frames []Frame
	for {
		i := strings.Index(text, delimiter)
		if i < 0 {
			return frames, text
		}
		candidate := text[:i]
		text = text[i+len(delimiter):]

		f, ok := parseFrame(candidate)
		if !ok {
			if dropped != nil {
				dropped(candidate)
			}
			continue
		}
		frames = append(frames, f)
	}
}

// parseFrame extracts the first "event:" and "data:" lines of a candidate.
// Line order within the candidate does not matter. A candidate without a
// data line, or whose data is not valid JSON, is rejected.
func parseFrame(candidate string) (Frame, bool) {
	var (
		eventType string
		data      string
		hasEvent  bool
		hasData   bool
	)
	for _, line := range strings.Split(candidate, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !hasEvent {
			if v, ok := fieldValue(line, "event:"); ok {
				eventType, hasEvent = strings.TrimSpace(v), true
				continue
			}
		}
		if !hasData {
			if v, ok := fieldValue(line, "data:"); ok {
				data, hasData = v, true
			}
		}
	}
	if !hasData {
		return Frame{}, false
	}

	raw := []byte(strings.TrimSpace(data))
	if !json.Valid(raw) {
		return Frame{}, false
	}

	if eventType == "" {
		eventType = DefaultEventType
	}
	return Frame{EventType: eventType, Data: json.RawMessage(raw)}, true
}

// fieldValue matches "<prefix><whitespace>*<value>" where value is non-empty.
func fieldValue(line, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	v := strings.TrimLeft(line[len(prefix):], " \t")
	if v == "" {
		return "", false
	}
	return v, true
}

// Parser is the stateful wrapper around Tokenize used while a stream is
// being read. The zero value is ready to use.
type Parser struct {
	buf     string
	dropped int
}

// Feed appends chunk and returns the frames it completed.
func (p *Parser) Feed(chunk string) []Frame {
	var frames []Frame
	frames, p.buf = tokenize(p.buf, chunk, func(string) { p.dropped++ })
	return frames
}

// Remainder returns the buffered text of the incomplete trailing frame.
func (p *Parser) Remainder() string { return p.buf }

// Dropped returns how many delimited candidates were discarded.
func (p *Parser) Dropped() int { return p.dropped }

// Reset discards buffered text and counters.
func (p *Parser) Reset() {
	p.buf = ""
	p.dropped = 0
}
