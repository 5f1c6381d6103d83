package netbuf

import (
	"testing"
)

func TestNewArenaPanicsOnBadSizing(t *testing.T) {
	tests := []struct {
		name          string
		chunkSize     int
		chunksPerSlab int
	}{
		{"zero chunk size", 0, 4},
		{"negative chunk size", -1, 4},
		{"zero chunks per slab", 8, 0},
		{"negative chunks per slab", 8, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("NewArena(%d, %d) did not panic", tt.chunkSize, tt.chunksPerSlab)
				}
			}()
			NewArena(tt.chunkSize, tt.chunksPerSlab)
		})
	}
}

func TestArenaStartsWithNoSlabs(t *testing.T) {
	a := NewArena(4, 8)
	if got := a.FreeChunks(); got != 0 {
		t.Errorf("FreeChunks() on a fresh arena = %d, want 0", got)
	}
	if got := a.TotalChunks(); got != 0 {
		t.Errorf("TotalChunks() on a fresh arena = %d, want 0", got)
	}
}

func TestNewChunkGrowsSlabLazily(t *testing.T) {
	a := NewArena(4, 3)

	c := a.NewChunk()
	if c.Cap() != 4 {
		t.Errorf("chunk Cap() = %d, want 4", c.Cap())
	}
	if got := a.TotalChunks(); got != 3 {
		t.Errorf("TotalChunks() after first NewChunk = %d, want 3", got)
	}
	if got := a.FreeChunks(); got != 2 {
		t.Errorf("FreeChunks() after first NewChunk = %d, want 2", got)
	}
}

func TestDropReleases(t *testing.T) {
	a := NewArena(4, 1)
	c := a.NewChunk()
	before := a.FreeChunks()
	c.Close()
	if got := a.FreeChunks(); got != before+1 {
		t.Errorf("FreeChunks() after Close = %d, want %d", got, before+1)
	}
}

func TestDoubleCloseOfSameChunkPanics(t *testing.T) {
	a := NewArena(4, 1)
	c := a.NewChunk()
	c.Close()

	defer func() {
		if recover() == nil {
			t.Error("second Close() on the same chunk did not panic")
		}
	}()
	c.Close()
}

func TestLIFOReuse(t *testing.T) {
	a := NewArena(2, 4)

	chunks := make([]*Chunk, 4)
	for i := range chunks {
		chunks[i] = a.NewChunk()
	}

	// Drop the third of four acquired chunks.
	chunks[2].Close()

	next := a.NewChunk()
	if next.token != chunks[2].token {
		t.Errorf("LIFO reuse: next NewChunk token = %+v, want the third chunk's token %+v", next.token, chunks[2].token)
	}
}

func TestConservationAcrossSlabGrowth(t *testing.T) {
	a := NewArena(2, 1)

	var live []*Chunk
	for i := 0; i < 5; i++ {
		live = append(live, a.NewChunk())
	}
	if got := a.TotalChunks(); got != 5 {
		t.Fatalf("TotalChunks() = %d, want 5", got)
	}
	if got := a.FreeChunks(); got != 0 {
		t.Fatalf("FreeChunks() with all chunks live = %d, want 0", got)
	}

	for _, c := range live {
		c.Close()
	}
	if got := a.FreeChunks(); got != 5 {
		t.Errorf("FreeChunks() after releasing all = %d, want 5", got)
	}
	if conserved := a.FreeChunks() + 0; conserved != a.TotalChunks() {
		t.Errorf("conservation law violated: free=%d total=%d", conserved, a.TotalChunks())
	}
}

func TestReleaseWithoutBuffer(t *testing.T) {
	a := NewArena(2, 1)
	if got := a.FreeChunks(); got != 0 {
		t.Fatalf("initial FreeChunks() = %d, want 0", got)
	}

	c1 := a.NewChunk()
	c2 := a.NewChunk()
	c1.Close()
	c2.Close()

	if got := a.FreeChunks(); got != 2 {
		t.Errorf("FreeChunks() after two NewChunk+Close = %d, want 2", got)
	}
}

func TestChunkWriteReturnsZeroWhenFull(t *testing.T) {
	a := NewArena(4, 1)
	c := a.NewChunk()
	defer c.Close()

	n := c.Write([]byte("test"))
	if n != 4 {
		t.Fatalf("first Write() = %d, want 4", n)
	}
	if n := c.Write([]byte("x")); n != 0 {
		t.Errorf("Write() on a full chunk = %d, want 0", n)
	}
	if !c.Full() {
		t.Error("Full() = false on a chunk written to capacity")
	}
}

func TestChunkWritePartialFill(t *testing.T) {
	a := NewArena(4, 1)
	c := a.NewChunk()
	defer c.Close()

	n := c.Write([]byte("toolong"))
	if n != 4 {
		t.Fatalf("Write() with overflowing data = %d, want 4 (chunk capacity)", n)
	}
	if got := string(c.AsSlice()); got != "tool" {
		t.Errorf("AsSlice() = %q, want %q", got, "tool")
	}
}
