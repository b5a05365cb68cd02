package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
	"github.com/wedding-seating/go-seating-backend/internal/seating/engine"
)

func testProject() domain.Project {
	p := domain.DefaultProject("p1")
	p.Guests = []domain.Guest{
		{ID: "g1", Name: "佐藤 太郎", Side: domain.SideGroom},
		{ID: "g2", Name: "田中 一郎", Side: domain.SideGroom, IsTentative: true},
		{ID: "g3", Name: "鈴木 幸子", Side: domain.SideBride},
	}
	second := domain.CloneLayout(p.Layouts[0])
	second.ID = "l2"
	second.Name = "別プラン"
	p.Layouts = append(p.Layouts, second)
	return p
}

func TestDeleteGuest_CascadesAcrossLayouts(t *testing.T) {
	s := New(testProject())
	s.AssignGuest("g1", "t1", 0)
	s.SetActiveLayout("l2")
	s.AssignGuest("g1", "t2", 4)
	s.SetActiveLayout("l1")

	s.DeleteGuest("g1")

	snap := s.Snapshot()
	require.Len(t, snap.Guests, 2)
	for _, l := range snap.Layouts {
		_, _, seated := engine.Locate(l, "g1")
		assert.False(t, seated, "layout %s still references the deleted guest", l.ID)
	}

	// Deleting again is a no-op.
	s.DeleteGuest("g1")
	assert.Len(t, s.Guests(), 2)
}

func TestUpdateActiveLayout_TouchesOnlyActive(t *testing.T) {
	s := New(testProject())
	cols := 4
	s.UpdateActiveLayout(LayoutPatch{GridCols: &cols})

	snap := s.Snapshot()
	assert.Equal(t, 4, snap.Layouts[0].GridCols)
	assert.Equal(t, 2, snap.Layouts[1].GridCols, "inactive layout must not change")
}

func TestSetActiveLayout_UnknownIDIgnored(t *testing.T) {
	s := New(testProject())
	s.SetActiveLayout("nope")
	assert.Equal(t, "l1", s.Snapshot().ActiveLayoutID)
}

func TestAssignmentsAreLayoutScoped(t *testing.T) {
	s := New(testProject())
	s.AssignGuest("g1", "t1", 0)
	s.SetActiveLayout("l2")
	s.AssignGuest("g1", "t3", 2)

	snap := s.Snapshot()
	assert.Equal(t, "g1", snap.Layouts[0].Assignments["t1"][0], "same guest may sit in both layouts")
	assert.Equal(t, "g1", snap.Layouts[1].Assignments["t3"][2])
}

func TestUnassignedAndStats(t *testing.T) {
	s := New(testProject())
	s.AssignGuest("g1", "t1", 0)
	s.AssignGuest("g2", "t1", 1)

	unassigned := s.Unassigned()
	require.Len(t, unassigned, 1)
	assert.Equal(t, "g3", unassigned[0].ID)

	stats := s.Stats()
	assert.Equal(t, Stats{Total: 3, Tentative: 1, Placed: 2}, stats)
}

func TestAssignToTable_FirstEmptySeat(t *testing.T) {
	s := New(testProject())
	s.AssignGuest("g1", "t1", 0)
	s.AssignToTable("g2", "t1")

	assert.Equal(t, "g2", s.ActiveLayout().Assignments["t1"][1])
}

func TestToggleTentative(t *testing.T) {
	s := New(testProject())
	s.ToggleTentative("g1")
	assert.True(t, s.Guests()[0].IsTentative)
	s.ToggleTentative("g1")
	assert.False(t, s.Guests()[0].IsTentative)
}

func TestAddAndRemoveTable(t *testing.T) {
	s := New(testProject())
	added := s.AddTable()
	assert.Equal(t, "5", added.Name)
	assert.Equal(t, 8, added.Capacity)

	s.AssignGuest("g1", added.ID, 0)
	s.RemoveTable(added.ID)

	l := s.ActiveLayout()
	assert.Len(t, l.Tables, 4)
	_, ok := l.Assignments[added.ID]
	assert.False(t, ok, "assignments for a removed table are dropped")
}

func TestHydrate_EmptyLayoutsFallsBack(t *testing.T) {
	s := New(domain.Project{ProjectID: "p1"})
	l := s.ActiveLayout()
	assert.Equal(t, domain.DefaultLayoutID, l.ID)
	assert.Len(t, l.Tables, 4)
}

func TestImportCSV_ReplacesRosterAndAssignments(t *testing.T) {
	s := New(testProject())
	s.AssignGuest("g1", "t1", 0)

	ok := s.ImportCSV("氏名,側,カテゴリー,肩書き,テーブル,席番号,備考\n新規 様,新婦,友人,,松,2,\n")
	require.True(t, ok)

	snap := s.Snapshot()
	require.Len(t, snap.Guests, 1)
	assert.Equal(t, "新規 様", snap.Guests[0].Name)

	seats := snap.Layouts[0].Assignments["t1"]
	require.Len(t, seats, 1)
	assert.Equal(t, snap.Guests[0].ID, seats[1], "old assignments are fully replaced")
}

func TestImportCSV_NoUsableRowsLeavesStateAlone(t *testing.T) {
	s := New(testProject())
	before := s.Snapshot()

	ok := s.ImportCSV("氏名,側\n,\n")
	assert.False(t, ok)
	assert.Equal(t, before, s.Snapshot())
}

func TestExportCSV_UsesActiveLayout(t *testing.T) {
	s := New(testProject())
	s.AssignGuest("g1", "t1", 0)

	out := s.ExportCSV()
	assert.Contains(t, out, "佐藤 太郎,新郎,,,松,1,")
}
