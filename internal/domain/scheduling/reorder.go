package scheduling

import (
	"github.com/google/uuid"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
)

// The reorder engine computes display-order updates for a single-item drag
// move. Position keys are plain integers spaced out so that most moves cost
// one write: the moved item takes the midpoint between its new neighbours.
// Only when the gap collapses (or a neighbour has no key at all) does the
// engine renumber the whole collection back to uniform spacing.

const (
	// keySpacing is the gap between consecutive keys after a renumber.
	keySpacing int64 = 1000
	// lowKeyFloor is the smallest usable key when moving to the front;
	// halving below it leaves no room for further front insertions.
	lowKeyFloor int64 = 2
	// minGap is the smallest gap that still has a safe integer midpoint.
	minGap int64 = 3
)

// Item is one element of the ordered collection as the engine sees it:
// an identity and an optional position key.
type Item struct {
	ID       uuid.UUID
	Position *int64
}

// PositionUpdate is a single key write the caller must persist.
type PositionUpdate struct {
	ID       uuid.UUID
	Position int64
}

// Plan is the set of writes realizing a move. Renumbered reports whether
// the whole collection was reassigned fresh keys. An empty plan means the
// move was a no-op and nothing must be written.
type Plan struct {
	Updates    []PositionUpdate
	Renumbered bool
}

// CourseItems projects courses into the engine's item form, in the order
// the store returned them.
func CourseItems(courses []*entities.Course) []Item {
	items := make([]Item, len(courses))
	for i, c := range courses {
		items[i] = Item{ID: c.ID, Position: c.DisplayOrder}
	}
	return items
}

// PlanMove computes the writes needed to move the item at index from to
// index to. Indexes refer to the current display order; out-of-range indexes
// and moves to the same slot yield an empty plan.
func PlanMove(items []Item, from, to int) Plan {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) || from == to {
		return Plan{}
	}

	reordered := splice(items, from, to)

	var prev, next *Item
	if to > 0 {
		prev = &reordered[to-1]
	}
	if to < len(reordered)-1 {
		next = &reordered[to+1]
	}

	moved := reordered[to]
	var key int64
	switch {
	case prev == nil && next == nil:
		return Plan{}
	case prev == nil:
		// Moving to the front: take half the first key.
		if next.Position == nil {
			return Renumber(reordered)
		}
		key = *next.Position / 2
		if key <= lowKeyFloor {
			return Renumber(reordered)
		}
	case next == nil:
		// Moving to the back: step past the last key, but renumber before
		// keys can run away unboundedly.
		if prev.Position == nil {
			return Renumber(reordered)
		}
		key = *prev.Position + keySpacing
		if key >= int64(len(items))*2*keySpacing {
			return Renumber(reordered)
		}
	default:
		if prev.Position == nil || next.Position == nil {
			return Renumber(reordered)
		}
		gap := *next.Position - *prev.Position
		if gap < minGap {
			return Renumber(reordered)
		}
		key = (*prev.Position + *next.Position) / 2
	}

	return Plan{Updates: []PositionUpdate{{ID: moved.ID, Position: key}}}
}

// splice returns a copy of items with the element at from reinserted at to.
func splice(items []Item, from, to int) []Item {
	reordered := make([]Item, 0, len(items))
	reordered = append(reordered, items[:from]...)
	reordered = append(reordered, items[from+1:]...)
	reordered = append(reordered[:to], append([]Item{items[from]}, reordered[to:]...)...)
	return reordered
}

// Renumber assigns every item a fresh key of rank x spacing so future moves
// regain maximum headroom. The keys depend only on the items' order, so
// renumbering an already renumbered collection reassigns the keys it holds,
// and writing the keys in any order converges on the same final ordering.
func Renumber(items []Item) Plan {
	updates := make([]PositionUpdate, len(items))
	for i, it := range items {
		updates[i] = PositionUpdate{ID: it.ID, Position: int64(i+1) * keySpacing}
	}
	return Plan{Updates: updates, Renumbered: true}
}
