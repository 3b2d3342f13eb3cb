// pkg/physics/pairs.go
package physics

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pair identifies an overlapping (as[I], bs[J]) combination
type Pair struct {
	I int
	J int
}

// FindOverlaps tests every tree in as against every tree in bs and returns
// the overlapping index pairs sorted by (I, J). Rows are sharded across up
// to workers goroutines; workers <= 1 runs on the caller's goroutine.
//
// Trees are only read, so none of them may be translated until FindOverlaps
// returns. Nil entries are skipped.
func FindOverlaps(ctx context.Context, as, bs []*HitboxTree, workers int) ([]Pair, error) {
	if len(as) == 0 || len(bs) == 0 {
		return nil, nil
	}

	if workers <= 1 {
		var pairs []Pair
		for i, a := range as {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			pairs = appendRow(pairs, i, a, bs)
		}
		return pairs, nil
	}

	var (
		mu    sync.Mutex
		pairs []Pair
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, a := range as {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := appendRow(nil, i, a, bs)
			if len(row) == 0 {
				return nil
			}
			mu.Lock()
			pairs = append(pairs, row...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(pairs, func(x, y int) bool {
		if pairs[x].I != pairs[y].I {
			return pairs[x].I < pairs[y].I
		}
		return pairs[x].J < pairs[y].J
	})
	return pairs, nil
}

func appendRow(pairs []Pair, i int, a *HitboxTree, bs []*HitboxTree) []Pair {
	if a == nil {
		return pairs
	}
	for j, b := range bs {
		if b != nil && a.Overlaps(b) {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}
