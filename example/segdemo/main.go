// Command segdemo drives a Heap with random alloc/free traffic and prints an
// ASCII map of the heap-resident block chain after each allocation and each
// release, in the
// spirit of ummmalloc's own ummexample demo.
package main

import (
	"fmt"
	"math/rand"
	"unsafe"

	"github.com/segalloc/segalloc"
)

func printBlocks(h *segalloc.Heap) {
	var n rune
	h.Walk(func(b segalloc.BlockInfo) bool {
		c := byte('a') + byte(n%26)
		if b.Allocated {
			c = byte('A') + byte(n%26)
		}
		n++
		width := int(b.Size / 8)
		if width < 1 {
			width = 1
		}
		for i := 0; i < width; i++ {
			fmt.Printf("%c", c)
		}
		return true
	})
	fmt.Println()
}

func main() {
	h, err := segalloc.NewHeap(nil)
	if err != nil {
		panic(err)
	}

	rng := rand.New(rand.NewSource(1))
	live := map[uintptr]struct{}{}

	for i := 0; i < 400; i++ {
		if len(live) == 0 || rng.Intn(3) != 0 {
			size := uintptr(8 + rng.Intn(2048))
			p, err := h.Allocate(size)
			if err != nil {
				continue
			}
			live[uintptr(p)] = struct{}{} //nolint:gosec
			printBlocks(h)
			continue
		}

		for addr := range live {
			delete(live, addr)
			if err := h.Release(unsafe.Pointer(addr)); err != nil { //nolint:gosec
				panic(err)
			}
			break
		}
		printBlocks(h)
	}

	st := h.Stats()
	fmt.Printf("heap bytes: %d\n", st.HeapEnd-st.HeapStart)
	for i, count := range st.BucketCounts {
		if count > 0 {
			fmt.Printf("bucket %d: %d free blocks, %d bytes\n", i, count, st.BucketBytes[i])
		}
	}
}
