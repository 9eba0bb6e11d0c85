package main

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/wippyai/runtime-bridge/native"
	"github.com/wippyai/runtime-bridge/registry"
)

// stats is shared between the workers and whichever frontend is rendering
// them; all fields are read while the run is still in flight.
type stats struct {
	ops        atomic.Int64
	flips      atomic.Int64
	violations atomic.Int64
	slotDrops  atomic.Int64
	done       atomic.Bool
}

// dropWatcher counts slot-originated wrapper drops.
type dropWatcher struct {
	st *stats
}

func (w *dropWatcher) OnWrapperEvent(e registry.Event) {
	if e.Type == registry.EventDropped && e.FromSlot {
		w.st.slotDrops.Add(1)
	}
}

type result struct {
	Ops        int64
	Flips      int64
	Violations int64
	SlotDrops  int64
	OwnedAtEnd int
	Leftover   int
}

// runStress binds cfg.Objects native objects to an in-process wrapper table,
// lets cfg.Goroutines workers race ownership flips and reads against each
// other, then tears every object down and checks that exactly the
// still-owned bindings released their wrappers.
func runStress(cfg Config, st *stats) (result, error) {
	table := registry.NewTable()
	adapter := registry.NewAdapter(table)
	table.Subscribe(&dropWatcher{st: st})

	objects := make([]*native.Object, cfg.Objects)
	for i := range objects {
		objects[i] = native.New(i)
		if _, err := native.BindWrapper(objects[i], adapter, table); err != nil {
			return result{}, fmt.Errorf("bind object %d: %w", i, err)
		}
	}

	var wg sync.WaitGroup
	for w := 0; w < cfg.Goroutines; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < cfg.Iterations; i++ {
				obj := objects[rng.Intn(len(objects))]
				s := obj.Slot()
				switch rng.Intn(4) {
				case 0:
					s.SetOwns(true)
					st.flips.Add(1)
				case 1:
					s.SetOwns(false)
					st.flips.Add(1)
				default:
					if s.Owns() && s.Wrapper() == 0 {
						st.violations.Add(1)
					}
				}
				st.ops.Add(1)
			}
		}(int64(w) + 1)
	}
	wg.Wait()

	owned := 0
	for _, obj := range objects {
		if obj.Slot().Owns() {
			owned++
		}
	}
	for _, obj := range objects {
		obj.Release()
	}

	st.done.Store(true)
	return result{
		Ops:        st.ops.Load(),
		Flips:      st.flips.Load(),
		Violations: st.violations.Load(),
		SlotDrops:  st.slotDrops.Load(),
		OwnedAtEnd: owned,
		Leftover:   table.Len(),
	}, nil
}

func (r result) summary() string {
	status := "OK"
	if r.Violations > 0 || r.SlotDrops != int64(r.OwnedAtEnd) {
		status = "FAILED"
	}
	return fmt.Sprintf(
		"%s: %d ops, %d ownership flips\n"+
			"invariant violations: %d\n"+
			"owned at teardown: %d, slot-originated drops: %d, wrappers left to runtime: %d\n",
		status, r.Ops, r.Flips, r.Violations, r.OwnedAtEnd, r.SlotDrops, r.Leftover)
}
