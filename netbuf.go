package netbuf

import "fmt"

// NetBuf is an ordered FIFO queue of Chunks plus a read cursor into the
// head chunk. Write appends to the tail, pulling fresh chunks from its
// Arena as the current tail fills; WriteTo drains from the head into a
// sink, popping (and releasing) chunks as they're fully consumed.
//
// A NetBuf is not safe for concurrent use, and must not outlive the Arena
// it was created from. It is created via Arena.NewBuf, never directly.
type NetBuf struct {
	arena  *Arena
	chunks []*Chunk
	pos    int // read cursor within chunks[0]; 0 when chunks is empty
}

// Write appends all of data to the buffer, pulling additional chunks from
// the arena as needed. It never fails except via the arena's own fatal OOM
// path (see Arena.NewChunk), and always reports n == len(data) with a nil
// error, so a NetBuf satisfies io.Writer.
func (b *NetBuf) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	if len(b.chunks) == 0 {
		b.chunks = append(b.chunks, b.arena.NewChunk())
	}

	written := 0
	for written < len(data) {
		tail := b.chunks[len(b.chunks)-1]
		n := tail.Write(data[written:])
		if n == 0 {
			b.chunks = append(b.chunks, b.arena.NewChunk())
			continue
		}
		written += n
	}
	return written, nil
}

// WriteString appends s to the buffer; a convenience wrapper over Write.
func (b *NetBuf) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// WriteTo drains the buffer from its head into w until either the buffer
// is empty or w reports a short write. Bytes are offered to w in the exact
// order they were written, across chunk boundaries.
//
// On total success it returns the number of bytes written and a nil
// error, with Len() == 0 afterward. On a short write it advances the read
// cursor by exactly the number of bytes w accepted, retains the
// partially-drained head chunk, and returns a *PartialWriteError wrapping
// w's own error — a subsequent WriteTo (to the same or a different sink)
// resumes at exactly the next unread byte, losing or duplicating nothing.
func (b *NetBuf) WriteTo(w NetWriter) (int64, error) {
	var total int64
	for len(b.chunks) > 0 {
		head := b.chunks[0]
		offer := head.AsSlice()[b.pos:]

		n, err := w.Write(offer)
		total += int64(n)
		if err != nil {
			b.pos += n
			return total, &PartialWriteError{Accepted: n, Err: err}
		}
		if n != len(offer) {
			// The sink's Ok(n) is not itself load-bearing for resumption —
			// we always reset pos to 0 below — but a nil error paired with
			// a short count violates io.Writer's contract and would hide a
			// bug in the sink rather than in this buffer.
			panic(fmt.Sprintf("netbuf: sink violated io.Writer contract: wrote %d of %d bytes with nil error", n, len(offer)))
		}

		b.pos = 0
		head.Close()
		b.chunks = b.chunks[1:]
	}
	return total, nil
}

// Len returns the number of unread bytes currently buffered.
func (b *NetBuf) Len() int {
	if len(b.chunks) == 0 {
		return 0
	}
	total := 0
	for _, c := range b.chunks {
		total += c.Len()
	}
	return total - b.pos
}

// NumChunks returns the number of chunks currently held by the buffer.
func (b *NetBuf) NumChunks() int {
	return len(b.chunks)
}

// Close releases every chunk the buffer still holds back to its arena.
// Go has no destructors, so callers that discard a NetBuf before draining
// it fully must call Close to avoid leaking its chunks.
func (b *NetBuf) Close() {
	for _, c := range b.chunks {
		c.Close()
	}
	b.chunks = nil
	b.pos = 0
}
