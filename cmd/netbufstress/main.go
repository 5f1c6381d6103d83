// Command netbufstress drives many independent (Arena, NetBuf) pairs
// concurrently, one per simulated connection, to exercise the "one arena
// per owner" usage pattern under real goroutine scheduling pressure. It is
// peripheral to the library — useful as a smoke test and a worked example
// of the supported concurrency shape, not part of the package's API.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/panjf2000/ants/v2"
	"github.com/pavanmanishd/netbuf"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		connections = flag.Int("connections", 200, "number of simulated connections to drive")
		concurrency = flag.Int("concurrency", 16, "size of the worker pool shared across connections")
		chunkSize   = flag.Int("chunk-size", 512, "arena chunk size in bytes, per connection")
		perSlab     = flag.Int("chunks-per-slab", 8, "chunks per slab, per connection")
	)
	flag.Parse()

	pool, err := ants.NewPool(*concurrency)
	if err != nil {
		log.Fatalf("netbufstress: creating worker pool: %v", err)
	}
	defer pool.Release()

	g := new(errgroup.Group)
	for i := 0; i < *connections; i++ {
		conn := i
		g.Go(func() error {
			done := make(chan error, 1)
			submitErr := pool.Submit(func() {
				done <- simulateConnection(conn, *chunkSize, *perSlab)
			})
			if submitErr != nil {
				return fmt.Errorf("connection %d: submit: %w", conn, submitErr)
			}
			return <-done
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "netbufstress: FAILED:", err)
		os.Exit(1)
	}
	fmt.Printf("netbufstress: %d connections drained cleanly via a %d-worker pool\n", *connections, *concurrency)
}

// simulateConnection owns a private Arena and NetBuf for the lifetime of
// one simulated connection: it writes a pseudo-random payload, drains it
// through a sink that only accepts a handful of bytes per call (modeling a
// non-blocking socket), and checks the arena gave every chunk back.
func simulateConnection(id, chunkSize, chunksPerSlab int) error {
	arena := netbuf.NewArena(chunkSize, chunksPerSlab)
	buf := arena.NewBuf()
	defer buf.Close()

	payload := randomPayload(id)
	if _, err := buf.Write(payload); err != nil {
		return fmt.Errorf("connection %d: write: %w", id, err)
	}

	var out bytes.Buffer
	sink := netbuf.NetWriterFunc(func(p []byte) (int, error) {
		n := len(p)
		if n > 7 {
			n = 7
		}
		written, err := out.Write(p[:n])
		if written < len(p) {
			return written, fmt.Errorf("connection %d: sink would block", id)
		}
		return written, err
	})

	for buf.Len() > 0 {
		if _, err := buf.WriteTo(sink); err != nil {
			continue
		}
	}

	if !bytes.Equal(out.Bytes(), payload) {
		return fmt.Errorf("connection %d: drained %d bytes, want %d", id, out.Len(), len(payload))
	}
	if free, total := arena.FreeChunks(), arena.TotalChunks(); free != total {
		return fmt.Errorf("connection %d: arena leaked chunks: free=%d total=%d", id, free, total)
	}
	return nil
}

func randomPayload(seed int) []byte {
	r := rand.New(rand.NewSource(int64(seed)))
	n := 256 + r.Intn(4096)
	b := make([]byte, n)
	r.Read(b)
	return b
}
