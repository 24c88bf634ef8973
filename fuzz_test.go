package segalloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFuzz_RandomAllocFree_HeapStaysConsistent runs a long random sequence of
// Allocate/Release calls and checks, after every step, that the heap's block
// chain is well-formed: addresses strictly increase and end exactly at
// heap_end, and every live pointer this test is still holding still reports
// allocated.
func TestFuzz_RandomAllocFree_HeapStaysConsistent(t *testing.T) {
	h, _, _ := newTestHeap()
	rng := rand.New(rand.NewSource(7))

	live := map[uintptr]uintptr{} // payload addr -> requested size

	for step := 0; step < 2000; step++ {
		if len(live) == 0 || rng.Intn(2) == 0 {
			size := uintptr(1 + rng.Intn(200))
			if p, err := h.Allocate(size); err == nil {
				live[uintptrOfTest(p)] = size
			}
		} else {
			var victim uintptr
			for addr := range live {
				victim = addr
				break
			}
			require.NoError(t, h.Release(pointerFromUintptrTest(victim)), "step %d", step)
			delete(live, victim)
		}

		validateHeapShape(t, h, step)
		for addr := range live {
			require.True(t, blockAt(addr-wordSize).isAllocated(), "step %d: live block reports free", step)
		}
	}
}

func validateHeapShape(t *testing.T, h *Heap, step int) {
	t.Helper()

	cur := h.heapStart
	for cur != 0 && cur < h.heapEnd {
		b := blockAt(cur)
		next := b.nextAddr()
		require.Greater(t, next, cur, "step %d: block did not advance", step)
		if !b.isAllocated() {
			require.Equal(t, b.header(), b.footer(), "step %d: free block header/footer mismatch", step)
		}
		cur = next
	}
	require.Equal(t, h.heapEnd, cur, "step %d: block chain did not land exactly on heap_end", step)
}
