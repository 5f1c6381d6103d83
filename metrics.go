package netbuf

// ArenaStats is a point-in-time snapshot of an Arena's pool accounting.
type ArenaStats struct {
	Slabs         int // number of slabs allocated so far
	ChunkSize     int // fixed size of every chunk, in bytes
	ChunksPerSlab int // fixed number of chunks per slab
	FreeChunks    int // slots currently in the free list
	TotalChunks   int // Slabs * ChunksPerSlab
}

// Stats returns a snapshot of the arena's pool statistics.
func (a *Arena) Stats() ArenaStats {
	s := a.state
	return ArenaStats{
		Slabs:         len(s.slabs),
		ChunkSize:     s.chunkSize,
		ChunksPerSlab: s.chunksPerSlab,
		FreeChunks:    len(s.freeList),
		TotalChunks:   len(s.slabs) * s.chunksPerSlab,
	}
}
