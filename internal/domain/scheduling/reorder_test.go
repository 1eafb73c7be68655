package scheduling_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/24kewang/schedule-manager/internal/domain/scheduling"
)

// keyed builds items with the given position keys; a negative key stands in
// for an item with no key at all.
func keyed(keys ...int64) []scheduling.Item {
	items := make([]scheduling.Item, len(keys))
	for i, k := range keys {
		items[i] = scheduling.Item{ID: uuid.New()}
		if k >= 0 {
			key := k
			items[i].Position = &key
		}
	}
	return items
}

func TestPlanMove_MoveToFrontHalvesFirstKey(t *testing.T) {
	t.Parallel()

	items := keyed(1000, 2000, 3000)
	plan := scheduling.PlanMove(items, 2, 0)

	if plan.Renumbered {
		t.Fatal("expected a single-write plan")
	}
	if len(plan.Updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(plan.Updates))
	}
	if plan.Updates[0].ID != items[2].ID {
		t.Fatal("expected the moved item to receive the new key")
	}
	if plan.Updates[0].Position != 500 {
		t.Fatalf("expected key 500, got %d", plan.Updates[0].Position)
	}
}

func TestPlanMove_MoveBetweenTakesMidpoint(t *testing.T) {
	t.Parallel()

	items := keyed(1000, 2000, 3000)
	plan := scheduling.PlanMove(items, 0, 1)

	if plan.Renumbered || len(plan.Updates) != 1 {
		t.Fatalf("expected a single-write plan, got %+v", plan)
	}
	if plan.Updates[0].Position != 2500 {
		t.Fatalf("expected key 2500, got %d", plan.Updates[0].Position)
	}
}

func TestPlanMove_MoveToBackStepsPastLastKey(t *testing.T) {
	t.Parallel()

	items := keyed(1000, 2000, 3000)
	plan := scheduling.PlanMove(items, 0, 2)

	if plan.Renumbered || len(plan.Updates) != 1 {
		t.Fatalf("expected a single-write plan, got %+v", plan)
	}
	if plan.Updates[0].ID != items[0].ID {
		t.Fatal("expected the moved item to receive the new key")
	}
	if plan.Updates[0].Position != 4000 {
		t.Fatalf("expected key 4000, got %d", plan.Updates[0].Position)
	}
}

func TestPlanMove_SameSlotIsNoOp(t *testing.T) {
	t.Parallel()

	items := keyed(1000, 2000, 3000)
	plan := scheduling.PlanMove(items, 1, 1)

	if len(plan.Updates) != 0 || plan.Renumbered {
		t.Fatalf("expected an empty plan, got %+v", plan)
	}
}

func TestPlanMove_OutOfRangeIsNoOp(t *testing.T) {
	t.Parallel()

	items := keyed(1000, 2000)

	for _, move := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		plan := scheduling.PlanMove(items, move[0], move[1])
		if len(plan.Updates) != 0 || plan.Renumbered {
			t.Fatalf("expected an empty plan for move %v, got %+v", move, plan)
		}
	}
}

func TestPlanMove_CollapsedGapForcesRenumber(t *testing.T) {
	t.Parallel()

	items := keyed(1000, 1001, 2000)
	plan := scheduling.PlanMove(items, 2, 1)

	if !plan.Renumbered {
		t.Fatal("expected a renumber plan")
	}
	if len(plan.Updates) != 3 {
		t.Fatalf("expected 3 updates, got %d", len(plan.Updates))
	}

	// The renumbered keys restore uniform spacing in the new order:
	// original item 0, then the moved item, then original item 1.
	wantIDs := []uuid.UUID{items[0].ID, items[2].ID, items[1].ID}
	for i, u := range plan.Updates {
		if u.ID != wantIDs[i] {
			t.Fatalf("update %d targets the wrong item", i)
		}
		if want := int64(i+1) * 1000; u.Position != want {
			t.Fatalf("expected key %d at rank %d, got %d", want, i, u.Position)
		}
	}
}

func TestPlanMove_FrontKeyFloorForcesRenumber(t *testing.T) {
	t.Parallel()

	// Halving 4 gives 2, which leaves no room for further front moves.
	items := keyed(4, 1000)
	plan := scheduling.PlanMove(items, 1, 0)

	if !plan.Renumbered {
		t.Fatal("expected a renumber plan")
	}
}

func TestPlanMove_KeyGrowthGuardForcesRenumber(t *testing.T) {
	t.Parallel()

	// A back move that would push the max key to twice the renumbered
	// ceiling triggers a renumber instead.
	items := keyed(1000, 5000, 5500)
	plan := scheduling.PlanMove(items, 0, 2)

	if !plan.Renumbered {
		t.Fatal("expected a renumber plan")
	}
}

func TestPlanMove_UnkeyedNeighbourForcesRenumber(t *testing.T) {
	t.Parallel()

	items := keyed(1000, -1, 3000)
	plan := scheduling.PlanMove(items, 2, 1)

	if !plan.Renumbered {
		t.Fatal("expected a renumber plan when a neighbour has no key")
	}
}

func TestRenumber_SecondPassKeepsKeys(t *testing.T) {
	t.Parallel()

	items := keyed(1000, 1001, 1002)
	first := scheduling.Renumber(items)

	applied := make([]scheduling.Item, len(first.Updates))
	for i, u := range first.Updates {
		key := u.Position
		applied[i] = scheduling.Item{ID: u.ID, Position: &key}
	}

	// Keys depend only on order: renumbering the applied collection assigns
	// every item the key it already holds.
	second := scheduling.Renumber(applied)
	if len(second.Updates) != len(first.Updates) {
		t.Fatalf("expected %d updates, got %d", len(first.Updates), len(second.Updates))
	}
	for i, u := range second.Updates {
		if u != first.Updates[i] {
			t.Fatalf("update %d changed between passes: first %+v, second %+v", i, first.Updates[i], u)
		}
	}
}

func TestPlanMove_AfterRenumberMovesAreCheapAgain(t *testing.T) {
	t.Parallel()

	items := keyed(1000, 1001, 2000)
	plan := scheduling.PlanMove(items, 2, 1)
	if !plan.Renumbered {
		t.Fatal("expected a renumber plan")
	}

	// Apply the renumber, then move again: the fresh spacing makes the
	// next move a single midpoint write.
	renumbered := make([]scheduling.Item, len(plan.Updates))
	for i, u := range plan.Updates {
		key := u.Position
		renumbered[i] = scheduling.Item{ID: u.ID, Position: &key}
	}

	next := scheduling.PlanMove(renumbered, 2, 1)
	if next.Renumbered || len(next.Updates) != 1 {
		t.Fatalf("expected a single-write plan, got %+v", next)
	}
	if next.Updates[0].Position != 1500 {
		t.Fatalf("expected key 1500, got %d", next.Updates[0].Position)
	}
}
