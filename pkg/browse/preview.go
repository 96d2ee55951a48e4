package browse

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tierview/tierview/pkg/content"
	"github.com/tierview/tierview/pkg/meta"
)

// DefaultPreviewBytes is the preview window size: at most 5KB of a file is
// rendered per request.
const DefaultPreviewBytes = 5 * 1024

// Diagnostic messages shown in place of preview text. The wording is part
// of the user-facing surface and is asserted by tests.
const (
	msgFileNotComplete = "The requested file is not complete yet."
	msgFileEmpty       = "Unable to traverse to offset; is file empty?"
	msgOffsetBeyond    = "Unable to traverse to offset; is offset larger than the file?"
	msgUnreadable      = "Unable to read file"
)

// EffectiveOffset computes the byte offset a preview starts at.
//
// Forward mode (endPresent false): the offset is relative to the start of
// the file. Reverse mode (endPresent true): relative to the end, i.e.
// fileLength - relative. A missing or non-integer parameter counts as 0.
// The result is always clamped to [0, fileLength].
func EffectiveOffset(offsetParam string, endPresent bool, fileLength int64) int64 {
	relative, err := strconv.ParseInt(offsetParam, 10, 64)
	if err != nil {
		relative = 0
	}

	var offset int64
	if endPresent {
		offset = fileLength - relative
	} else {
		offset = relative
	}

	if offset < 0 {
		return 0
	}
	if offset > fileLength {
		return fileLength
	}
	return offset
}

// PreviewReader produces a short, display-safe snapshot of file content.
//
// Streams are opened with cache bypass: previews are read-once and must not
// promote content into the fast tier.
type PreviewReader struct {
	store       content.ContentStore
	windowBytes int64
}

// NewPreviewReader creates a reader over the given content store.
// A windowBytes of 0 selects DefaultPreviewBytes.
func NewPreviewReader(store content.ContentStore, windowBytes int64) *PreviewReader {
	if windowBytes <= 0 {
		windowBytes = DefaultPreviewBytes
	}
	return &PreviewReader{store: store, windowBytes: windowBytes}
}

// Read produces the preview text for a file starting at the given effective
// offset, along with the number of content bytes actually shown.
//
// Incomplete files short-circuit to a diagnostic without touching the
// stream. Traversal and read failures inside an open stream map to the
// diagnostic messages above (with zero bytes shown); only failures to reach
// the store at all are returned as errors. The stream is closed on every
// exit path.
func (p *PreviewReader) Read(ctx context.Context, info *meta.FileInfo, offset int64) (string, int, error) {
	if !info.Completed {
		return msgFileNotComplete, 0, nil
	}

	stream, err := p.store.Open(ctx, info.ContentID, content.OpenOptions{BypassCache: true})
	if err != nil {
		return "", 0, err
	}
	defer stream.Close()

	skipped, err := discard(stream, offset)
	if err != nil {
		// The stream failed before reaching the offset at all.
		return msgFileEmpty, 0, nil
	}
	if skipped < offset {
		return msgOffsetBeyond, 0, nil
	}

	windowLength := p.windowBytes
	if remaining := info.Length - offset; remaining < windowLength {
		windowLength = remaining
	}

	window := make([]byte, windowLength)
	read, err := io.ReadFull(stream, window)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return msgUnreadable, 0, nil
	}
	if read == 0 && windowLength > 0 {
		return msgUnreadable, 0, nil
	}

	// Only render what was actually read; a short read is not an error.
	return renderPreview(window[:read]), read, nil
}

// discard advances the stream by n bytes, reporting how many were actually
// consumed. Running off the end of the stream is reported through the
// count, not the error.
func discard(stream io.Reader, n int64) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	skipped, err := io.CopyN(io.Discard, stream, n)
	if errors.Is(err, io.EOF) {
		return skipped, nil
	}
	return skipped, err
}

// renderPreview turns raw content bytes into a display-safe string.
//
// Printable runes, tabs, newlines and carriage returns pass through;
// other control characters and invalid UTF-8 bytes render as '.'. The
// byte content drives the rendering so binary files stay inspectable.
func renderPreview(data []byte) string {
	var builder strings.Builder
	builder.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		switch {
		case r == utf8.RuneError && size == 1:
			builder.WriteByte('.')
		case r == '\n' || r == '\t' || r == '\r':
			builder.WriteRune(r)
		case unicode.IsPrint(r):
			builder.WriteRune(r)
		default:
			builder.WriteByte('.')
		}
		data = data[size:]
	}
	return builder.String()
}
