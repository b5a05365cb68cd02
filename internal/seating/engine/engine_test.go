package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
)

func testLayout() domain.Layout {
	return domain.Layout{
		ID:   "l1",
		Name: "基本プラン",
		Tables: []domain.Table{
			{ID: "t1", Name: "松", Capacity: 8},
			{ID: "t2", Name: "竹", Capacity: 8},
			{ID: "t3", Name: "梅", Capacity: 6},
		},
		Assignments: domain.AssignmentMap{},
		GridCols:    2,
	}
}

func TestAssign_Placement(t *testing.T) {
	l := Assign(testLayout(), "g1", "t1", 3)
	assert.Equal(t, "g1", l.Assignments["t1"][3])
}

func TestAssign_Move(t *testing.T) {
	l := Assign(testLayout(), "g1", "t1", 0)
	l = Assign(l, "g1", "t2", 5)

	_, ok := l.Assignments["t1"][0]
	assert.False(t, ok, "old seat should be cleared")
	assert.Equal(t, "g1", l.Assignments["t2"][5])
}

func TestAssign_Swap(t *testing.T) {
	l := Assign(testLayout(), "a", "t1", 1)
	l = Assign(l, "b", "t2", 2)

	l = Assign(l, "a", "t2", 2)

	assert.Equal(t, "b", l.Assignments["t1"][1], "occupant moves into the source seat")
	assert.Equal(t, "a", l.Assignments["t2"][2])
}

func TestAssign_BumpUnassignsOccupant(t *testing.T) {
	l := Assign(testLayout(), "b", "t2", 2)

	// "a" holds no seat, so the drop bumps "b" off rather than swapping.
	l = Assign(l, "a", "t2", 2)

	assert.Equal(t, "a", l.Assignments["t2"][2])
	_, _, seated := Locate(l, "b")
	assert.False(t, seated, "bumped guest becomes unassigned, not deleted")
}

func TestAssign_UnknownTableNoOp(t *testing.T) {
	l := testLayout()
	got := Assign(l, "g1", "nope", 0)
	assert.Equal(t, l.Assignments, got.Assignments)
}

func TestAssign_SeatPastCapacityNoOp(t *testing.T) {
	l := testLayout()
	got := Assign(l, "g1", "t3", 6)
	assert.Empty(t, got.Assignments["t3"])
}

func TestAssign_DoesNotMutateInput(t *testing.T) {
	l := Assign(testLayout(), "a", "t1", 0)
	_ = Assign(l, "a", "t2", 0)
	assert.Equal(t, "a", l.Assignments["t1"][0], "input layout must stay untouched")
}

func TestAssign_AtMostOneSeatPerGuest(t *testing.T) {
	l := testLayout()
	moves := []struct {
		guest string
		table string
		seat  int
	}{
		{"a", "t1", 0}, {"b", "t1", 1}, {"a", "t2", 0},
		{"c", "t1", 0}, {"b", "t2", 0}, {"a", "t1", 1},
	}
	for _, m := range moves {
		l = Assign(l, m.guest, m.table, m.seat)
	}

	counts := map[string]int{}
	for _, seats := range l.Assignments {
		for _, g := range seats {
			counts[g]++
		}
	}
	for guest, n := range counts {
		assert.Equal(t, 1, n, "guest %s occupies %d seats", guest, n)
	}
}

func TestUnassign(t *testing.T) {
	l := Assign(testLayout(), "g1", "t1", 4)
	l = Unassign(l, "g1")

	_, _, seated := Locate(l, "g1")
	assert.False(t, seated)

	// Unknown guest is a no-op, never an error.
	l = Unassign(l, "ghost")
	assert.NotNil(t, l.Assignments)
}

func TestUnassignAll_AcrossLayouts(t *testing.T) {
	l1 := Assign(testLayout(), "g1", "t1", 0)
	l2 := testLayout()
	l2.ID = "l2"
	l2 = Assign(l2, "g1", "t2", 3)

	layouts := UnassignAll([]domain.Layout{l1, l2}, "g1")

	for _, l := range layouts {
		_, _, seated := Locate(l, "g1")
		assert.False(t, seated, "layout %s still seats g1", l.ID)
	}

	// Idempotent.
	again := UnassignAll(layouts, "g1")
	assert.Equal(t, layouts, again)
}

func TestResizeCapacity_ShrinkEvicts(t *testing.T) {
	l := testLayout()
	for i := 0; i < 8; i++ {
		l = Assign(l, string(rune('a'+i)), "t1", i)
	}

	l = ResizeCapacity(l, "t1", 5)

	require.Equal(t, 5, l.Tables[0].Capacity)
	for i := 0; i < 5; i++ {
		assert.NotEmpty(t, l.Assignments["t1"][i], "seat %d must survive the shrink", i)
	}
	for i := 5; i < 8; i++ {
		_, ok := l.Assignments["t1"][i]
		assert.False(t, ok, "seat %d must be evicted", i)
	}
}

func TestResizeCapacity_Clamp(t *testing.T) {
	l := ResizeCapacity(testLayout(), "t1", 2)
	assert.Equal(t, domain.MinCapacity, l.Tables[0].Capacity)

	l = ResizeCapacity(l, "t1", 99)
	assert.Equal(t, domain.MaxCapacity, l.Tables[0].Capacity)
}

func TestResizeCapacity_UnknownTableNoOp(t *testing.T) {
	l := testLayout()
	assert.Equal(t, l, ResizeCapacity(l, "nope", 6))
}

func TestFirstEmptySeat(t *testing.T) {
	l := testLayout()

	seat, ok := FirstEmptySeat(l, "t1")
	require.True(t, ok)
	assert.Equal(t, 0, seat)

	l = Assign(l, "a", "t1", 0)
	l = Assign(l, "b", "t1", 1)
	l = Assign(l, "c", "t1", 3)

	seat, ok = FirstEmptySeat(l, "t1")
	require.True(t, ok)
	assert.Equal(t, 2, seat)

	for i := 0; i < 6; i++ {
		l = Assign(l, string(rune('p'+i)), "t3", i)
	}
	_, ok = FirstEmptySeat(l, "t3")
	assert.False(t, ok, "full table has no empty seat")

	_, ok = FirstEmptySeat(l, "nope")
	assert.False(t, ok)
}

func TestReorderTables(t *testing.T) {
	l := ReorderTables(testLayout(), "t3", "t1")
	assert.Equal(t, []string{"t3", "t1", "t2"}, tableIDs(l))

	// Same source and target is a no-op.
	l2 := testLayout()
	assert.Equal(t, tableIDs(l2), tableIDs(ReorderTables(l2, "t2", "t2")))

	// Moving rightward: the insertion index is computed before removal, so
	// the moved table ends up after the target.
	l3 := ReorderTables(testLayout(), "t1", "t2")
	assert.Equal(t, []string{"t2", "t1", "t3"}, tableIDs(l3))
}

func tableIDs(l domain.Layout) []string {
	ids := make([]string, len(l.Tables))
	for i, t := range l.Tables {
		ids[i] = t.ID
	}
	return ids
}
