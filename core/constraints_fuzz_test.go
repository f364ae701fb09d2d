package core

import (
	"testing"

	"github.com/huangsam/tradeoff/schema"
)

// FuzzSetConstraint checks that stored values stay in bounds and on the step grid.
func FuzzSetConstraint(f *testing.F) {
	f.Add(0, 9999)
	f.Add(1, -9999)
	f.Add(2, 100)
	f.Add(3, 77)
	f.Add(4, 0)
	f.Add(5, 505)

	f.Fuzz(func(t *testing.T, idx, value int) {
		ids := schema.AllConstraintIDs
		id := ids[((idx%len(ids))+len(ids))%len(ids)]

		store := NewStore(nil, false)
		got, ok := store.SetConstraint(id, value)
		if !ok {
			t.Fatalf("SetConstraint(%s) reported unknown id", id)
		}
		c, _ := store.Get(id)
		if got != c.Value {
			t.Fatalf("returned %d but stored %d", got, c.Value)
		}
		if c.Value < c.Min || c.Value > c.Max {
			t.Fatalf("%s=%d out of [%d,%d]", id, c.Value, c.Min, c.Max)
		}
		if (c.Value-c.Min)%c.Step != 0 {
			t.Fatalf("%s=%d is off the grid (min %d, step %d)", id, c.Value, c.Min, c.Step)
		}

		// Setting the stored value again is a fixed point.
		if again, _ := store.SetConstraint(id, got); again != got {
			t.Fatalf("snapping %d again gave %d", got, again)
		}
	})
}
