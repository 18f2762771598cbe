package sandbox

import "strings"

const truncationMarker = "\n... output truncated"

// cappedBuffer keeps the first max bytes written and silently drops the rest.
// Write never fails so a chatty program cannot stall on a full pipe.
type cappedBuffer struct {
	buf       strings.Builder
	max       int
	truncated bool
}

func newCappedBuffer(max int) *cappedBuffer {
	return &cappedBuffer{max: max}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.max - b.buf.Len()
	if room <= 0 {
		b.truncated = b.truncated || len(p) > 0
		return len(p), nil
	}
	if len(p) > room {
		b.buf.Write(p[:room])
		b.truncated = true
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	if b.truncated {
		return b.buf.String() + truncationMarker
	}
	return b.buf.String()
}
