package client

import "bytes"

// LineBuffer accumulates bytes read from a stream and splits them into
// newline-terminated frames. Partial trailing data is kept until the rest
// of the line arrives.
type LineBuffer struct {
	buf []byte
}

// Append adds p to the buffer and returns every complete line, without the
// terminator. Returned slices do not alias the internal buffer.
func (b *LineBuffer) Append(p []byte) [][]byte {
	b.buf = append(b.buf, p...)

	var frames [][]byte
	for {
		i := bytes.IndexByte(b.buf, '\n')
		if i < 0 {
			break
		}
		frame := make([]byte, i)
		copy(frame, b.buf[:i])
		frames = append(frames, frame)
		b.buf = b.buf[i+1:]
	}

	// Reclaim the consumed prefix once the buffer drains
	if len(b.buf) == 0 {
		b.buf = b.buf[:0:0]
	}
	return frames
}

// Pending returns the number of buffered bytes not yet terminated by a newline
func (b *LineBuffer) Pending() int {
	return len(b.buf)
}

// Reset drops any buffered partial line
func (b *LineBuffer) Reset() {
	b.buf = nil
}
