package stream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const readChunkSize = 4096

// HandlerFunc receives one dispatched frame.
type HandlerFunc func(Frame)

// Handlers routes frames by event type. Frames whose type has no entry in
// ByType go to Fallback; when Fallback is nil they are ignored.
type Handlers struct {
	ByType   map[string]HandlerFunc
	Fallback HandlerFunc
}

func (h Handlers) dispatch(f Frame) {
	if fn, ok := h.ByType[f.EventType]; ok && fn != nil {
		fn(f)
		return
	}
	if h.Fallback != nil {
		h.Fallback(f)
	}
}

// Result summarises one Dispatch call.
type Result struct {
	// Frames is the number of frames handed to a handler.
	Frames int
	// Dropped counts delimited candidates that had no data line or
	// carried undecodable data.
	Dropped int
	// Completed reports whether the done sentinel was received.
	Completed bool
}

// ReadError is returned when the underlying stream fails mid-read.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("stream: read failed: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Dispatch reads r until EOF, a read error, or the done sentinel, decoding
// UTF-8 incrementally and handing every parsed frame to h in stream order.
// On the sentinel it returns immediately without reading further.
func Dispatch(ctx context.Context, r io.Reader, h Handlers) (Result, error) {
	src := unicode.UTF8.NewDecoder().Reader(r)
	buf := make([]byte, readChunkSize)

	var (
		parser Parser
		res    Result
	)
	for {
		if err := ctx.Err(); err != nil {
			res.Dropped = parser.Dropped()
			return res, err
		}

		n, err := src.Read(buf)
		if n > 0 {
			for _, f := range parser.Feed(string(buf[:n])) {
				if f.EventType == DoneEventType {
					res.Completed = true
					res.Dropped = parser.Dropped()
					return res, nil
				}
				h.dispatch(f)
				res.Frames++
			}
		}

		if err == io.EOF {
			res.Dropped = parser.Dropped()
			if rest := strings.TrimSpace(parser.Remainder()); rest != "" {
				slog.Debug("discarding unterminated frame at end of stream", "bytes", len(rest))
			}
			return res, nil
		}
		if err != nil {
			res.Dropped = parser.Dropped()
			return res, &ReadError{Err: err}
		}
	}
}
