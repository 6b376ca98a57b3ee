// Package clipboard copies dashboard text (feed entries, trend cards, the
// ingest log) to the system clipboard.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
)

// Swapped in tests.
var (
	nativeWrite           = clipboard.WriteAll
	oscOut      io.Writer = os.Stderr
)

// Write copies text to the system clipboard. It tries the native
// clipboard first (wl-copy, xclip, pbcopy, etc.) then falls back
// to OSC52 for SSH/tmux environments.
func Write(text string) error {
	err := nativeWrite(text)
	if err == nil {
		return nil
	}
	slog.Debug("native clipboard unavailable, using OSC52", "error", err)
	return writeOSC52(oscOut, text)
}

// writeOSC52 writes text to the clipboard using the OSC 52 escape sequence.
func writeOSC52(w io.Writer, text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(w, "\x1b]52;c;%s\x07", encoded)
	return err
}
