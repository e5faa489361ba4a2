package motograph

import (
	"sort"

	"github.com/pkg/errors"
)

// Motorcycle is a directed front travelling along mesh edges.
// Origin is the half-edge it was seeded on and identifies it for its whole life.
type Motorcycle struct {
	Origin  int
	curr    int
	started bool
}

// NewMotorcycle places a motorcycle on the seed half-edge h.
// Its first Step traverses h itself.
func NewMotorcycle(h int) *Motorcycle {
	return &Motorcycle{Origin: h, curr: h}
}

// Curr returns the half-edge the motorcycle currently occupies.
func (mc *Motorcycle) Curr() int { return mc.curr }

// Position returns the vertex the motorcycle stands on.
// Before the first step this is the destination of the seed half-edge.
func (mc *Motorcycle) Position(m Mesh) int { return m.ToVertex(mc.curr) }

// Next returns the half-edge Step would move to, without moving.
func (mc *Motorcycle) Next(m Mesh) int {
	if !mc.started {
		return mc.curr
	}
	return straight(m, mc.curr)
}

// Step advances the motorcycle by one half-edge and returns it.
func (mc *Motorcycle) Step(m Mesh) int {
	mc.curr = mc.Next(m)
	mc.started = true
	return mc.curr
}

type slotState uint8

const (
	slotEmpty slotState = iota
	slotLive
	slotCrashed
)

// Fleet is a dense table of motorcycles keyed by origin.
// Crashed motorcycles leave a tombstone and can never be added again.
type Fleet struct {
	slots []*Motorcycle
	state []slotState
	order []int
	live  int
}

// NewFleet returns an empty fleet able to hold one motorcycle per half-edge.
func NewFleet(numHalfEdges int) *Fleet {
	return &Fleet{
		slots: make([]*Motorcycle, numHalfEdges),
		state: make([]slotState, numHalfEdges),
	}
}

// Add registers mc. It fails if its origin is out of range or was already used.
func (fl *Fleet) Add(mc *Motorcycle) error {
	o := mc.Origin
	if o < 0 || o >= len(fl.slots) {
		return errors.Wrapf(ErrDuplicateOrigin, "origin %d out of range", o)
	}
	if fl.state[o] != slotEmpty {
		return errors.Wrapf(ErrDuplicateOrigin, "origin %d", o)
	}
	fl.slots[o] = mc
	fl.state[o] = slotLive
	fl.live++

	n := len(fl.order)
	if n > 0 && fl.order[n-1] > o {
		i := sort.SearchInts(fl.order, o)
		fl.order = append(fl.order, 0)
		copy(fl.order[i+1:], fl.order[i:])
		fl.order[i] = o
	} else {
		fl.order = append(fl.order, o)
	}
	return nil
}

// Get returns the live motorcycle with the given origin.
func (fl *Fleet) Get(origin int) (*Motorcycle, bool) {
	if origin < 0 || origin >= len(fl.slots) || fl.state[origin] != slotLive {
		return nil, false
	}
	return fl.slots[origin], true
}

// Crash removes the motorcycle for good. Crashing twice is a no-op.
func (fl *Fleet) Crash(origin int) {
	if fl.state[origin] != slotLive {
		return
	}
	fl.state[origin] = slotCrashed
	fl.slots[origin] = nil
	fl.live--
}

// Len returns the number of live motorcycles.
func (fl *Fleet) Len() int { return fl.live }

// Live returns the live motorcycles in ascending origin order.
func (fl *Fleet) Live() []*Motorcycle {
	out := make([]*Motorcycle, 0, fl.live)
	kept := fl.order[:0]
	for _, o := range fl.order {
		if fl.state[o] == slotLive {
			kept = append(kept, o)
			out = append(out, fl.slots[o])
		}
	}
	fl.order = kept
	return out
}
