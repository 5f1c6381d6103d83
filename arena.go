package netbuf

import "fmt"

// arenaState is the interior, shared state of an Arena: the slabs, the
// chunk sizing, and the LIFO free list. It is never exposed directly.
// Both Arena and every Chunk it issues hold a pointer to this struct, so
// Go's garbage collector — rather than any reference count we maintain by
// hand — keeps it alive for as long as any handle (Arena value, NetBuf, or
// loose Chunk) can still reach it. That sidesteps the cyclic-ownership
// problem a language with destructors has to solve with weak references:
// here, slabs are freed exactly when nothing reachable still needs them.
type arenaState struct {
	slabs         [][]byte
	chunkSize     int
	chunksPerSlab int
	freeList      []ChunkToken
}

// Arena is a shared, mutable pool of fixed-size Chunks backed by zero or
// more equally-sized slabs. It hands out Chunks in O(1), absorbs them back
// via release, and grows lazily by allocating new slabs.
//
// An Arena is not safe for concurrent use; the intended pattern is one
// Arena per goroutine (see cmd/netbufstress).
type Arena struct {
	state *arenaState
}

// NewArena creates an empty Arena; no slabs are allocated eagerly. Both
// chunkSize and chunksPerSlab must be positive — they define a fixed,
// immutable slot geometry for the arena's lifetime.
func NewArena(chunkSize, chunksPerSlab int) *Arena {
	if chunkSize < 1 {
		panic(fmt.Sprintf("netbuf: chunkSize must be >= 1, got %d", chunkSize))
	}
	if chunksPerSlab < 1 {
		panic(fmt.Sprintf("netbuf: chunksPerSlab must be >= 1, got %d", chunksPerSlab))
	}
	return &Arena{state: &arenaState{
		chunkSize:     chunkSize,
		chunksPerSlab: chunksPerSlab,
	}}
}

// NewBuf creates an empty NetBuf bound to this arena.
func (a *Arena) NewBuf() *NetBuf {
	return &NetBuf{arena: a}
}

// NewChunk returns a Chunk over a previously-unused or previously-released
// slot, allocating a new slab first if the free list is empty. The only
// failure mode is the Go runtime itself running out of memory when a new
// slab is needed, which is fatal to the whole program rather than a
// recoverable error.
func (a *Arena) NewChunk() *Chunk {
	s := a.state
	if len(s.freeList) == 0 {
		s.addSlab()
	}
	last := len(s.freeList) - 1
	tok := s.freeList[last]
	s.freeList = s.freeList[:last]

	base := s.chunkMem(tok)
	return newChunk(base, tok, s)
}

// addSlab allocates chunkSize*chunksPerSlab bytes from the Go allocator,
// appends it to slabs, and pushes every slot in it onto the free list in
// slot order, so that the first NewChunk to run after a fresh slab hands
// out its *last* slot first (LIFO), matching steady-state cache reuse.
func (s *arenaState) addSlab() {
	h := len(s.slabs)
	memory := make([]byte, s.chunkSize*s.chunksPerSlab)
	s.slabs = append(s.slabs, memory)
	for i := 0; i < s.chunksPerSlab; i++ {
		s.freeList = append(s.freeList, ChunkToken{holder: h, offset: i})
	}
}

func (s *arenaState) chunkMem(t ChunkToken) []byte {
	beg := t.offset * s.chunkSize
	return s.slabs[t.holder][beg : beg+s.chunkSize]
}

// release implements the releaser interface Chunk depends on. It pushes
// the token back onto the free list; no slab is ever deallocated before
// the Arena's interior state itself becomes unreachable.
func (s *arenaState) release(token ChunkToken) {
	s.freeList = append(s.freeList, token)
}

// FreeChunks returns the number of slots currently in the free list. This
// is the currently-cached free count, not the arena's total capacity — it
// is zero until the first slab is allocated, and grows in slab-sized
// increments thereafter.
func (a *Arena) FreeChunks() int {
	return len(a.state.freeList)
}

// TotalChunks returns the total number of slots across every slab the
// arena has allocated so far (free or in use). Unlike FreeChunks, this
// never shrinks.
func (a *Arena) TotalChunks() int {
	return len(a.state.slabs) * a.state.chunksPerSlab
}
