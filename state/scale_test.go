package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/signadot/docstate/ir"
)

func wideObject(n int) *ir.Node {
	kvs := make([]ir.KeyVal, n)
	for i := range kvs {
		kvs[i] = ir.KeyVal{Key: fmt.Sprintf("key-%d", i), Val: ir.FromInt(int64(i))}
	}
	return ir.FromKeyVals(kvs)
}

// fastest returns the best of three timings of fn.
func fastest(fn func()) time.Duration {
	var best time.Duration
	for i := 0; i < 3; i++ {
		start := time.Now()
		fn()
		d := time.Since(start)
		if i == 0 || d < best {
			best = d
		}
	}
	return best
}

func TestWideObjectScalesLinearly(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}
	const small, factor = 5000, 8
	run := func(n int) time.Duration {
		return fastest(func() {
			doc := wideObject(n)
			st := SyncState(doc, nil, ir.Path{}, always)
			count := 0
			for range VisiblePaths(doc, st) {
				count++
			}
			if count != n+1 {
				t.Fatalf("%d visible paths, want %d", count, n+1)
			}
			if SyncState(doc, st, ir.Path{}, always) != st {
				t.Fatalf("resync changed the state")
			}
		})
	}
	base := run(small)
	big := run(small * factor)
	// linear growth gives ~8x, quadratic ~64x.
	if base > 0 && big > base*factor*3 {
		t.Errorf("n=%d took %v, n=%d took %v: superlinear", small, base, small*factor, big)
	}
}
