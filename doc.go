// Package netbuf implements a chunked network-buffer allocator: a pooled
// memory arena that issues fixed-size byte chunks, and a growable FIFO byte
// queue built from those chunks, specialized for staging data to be drained
// into a non-blocking sink with precise partial-write accounting.
//
// # Overview
//
// An Arena manages a pool of fixed-size chunks carved out of larger backing
// slabs, with O(1) acquire and release. A NetBuf layers an append-at-tail,
// consume-at-head byte queue over that pool: Write pushes bytes into the
// tail chunk, pulling a fresh chunk from the arena whenever the tail fills;
// WriteTo drains bytes from the head chunk into a sink, releasing chunks
// back to the arena as they empty.
//
// # Basic Usage
//
//	a := netbuf.NewArena(4096, 16) // 4 KiB chunks, 16 chunks per slab
//	buf := a.NewBuf()
//
//	buf.Write([]byte("hello "))
//	buf.Write([]byte("world"))
//
//	if _, err := buf.WriteTo(conn); err != nil {
//		// err is a *netbuf.PartialWriteError; buf.Len() reflects the
//		// unsent remainder and the next WriteTo resumes exactly there.
//	}
//
// # Thread Safety
//
// An Arena and the NetBufs drawn from it are not safe for concurrent use.
// The intended usage pattern is one Arena (and its NetBufs) per goroutine,
// e.g. one per connection; see cmd/netbufstress for a worked example of
// many such independent owners running concurrently.
//
// # Memory Layout
//
// Chunks are fixed-size regions sliced out of slabs (contiguous backing
// allocations holding chunksPerSlab chunks each). A slab is allocated the
// first time the free list runs dry, and slabs are never returned to the
// Go runtime individually — only when the Arena itself becomes unreachable.
//
// # Performance Characteristics
//
//   - NewChunk / release: O(1), LIFO free list
//   - Write: O(1) amortized per byte, O(1) chunk rollover
//   - WriteTo: O(1) per drained chunk plus the sink's own cost
package netbuf
