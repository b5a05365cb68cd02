// Package state holds the in-session seating state: the guest roster, the
// layout variants and the active layout selector. All mutations go through
// the engine and produce fresh values; the store itself is safe for use from
// the autosave goroutine via its mutex.
package state

import (
	"strconv"
	"sync"

	"github.com/wedding-seating/go-seating-backend/internal/seating/csvmap"
	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
	"github.com/wedding-seating/go-seating-backend/internal/seating/engine"
)

// Stats summarizes the roster against the active layout.
type Stats struct {
	Total     int `json:"total"`
	Tentative int `json:"tentative"`
	Placed    int `json:"placed"`
}

// LayoutPatch carries a partial layout update; nil fields are left untouched.
type LayoutPatch struct {
	Name        *string
	Tables      []domain.Table
	Assignments domain.AssignmentMap
	GridCols    *int
}

// Store is the LayoutStore. The zero value is unusable; construct with New.
type Store struct {
	mu             sync.Mutex
	guests         []domain.Guest
	layouts        []domain.Layout
	activeLayoutID string
}

// New returns a store hydrated from the given project document.
func New(p domain.Project) *Store {
	s := &Store{}
	s.Hydrate(p)
	return s
}

// Hydrate replaces the whole session state from a project document. An empty
// layout list falls back to the default single layout so the active selector
// always resolves.
func (s *Store) Hydrate(p domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p = domain.CloneProject(p)
	s.guests = p.Guests
	if s.guests == nil {
		s.guests = []domain.Guest{}
	}
	s.layouts = p.Layouts
	if len(s.layouts) == 0 {
		s.layouts = domain.DefaultProject(p.ProjectID).Layouts
	}
	s.activeLayoutID = p.ActiveLayoutID
	if s.activeLayoutID == "" {
		s.activeLayoutID = domain.DefaultLayoutID
	}
}

// Snapshot returns a deep copy of the current state as a project payload.
// UpdatedAt is left blank; the store stamps it on write.
func (s *Store) Snapshot() domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneProject(domain.Project{
		Guests:         s.guests,
		Layouts:        s.layouts,
		ActiveLayoutID: s.activeLayoutID,
	})
}

// SetActiveLayout switches the active layout. Unknown ids are ignored.
func (s *Store) SetActiveLayout(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.layouts {
		if l.ID == id {
			s.activeLayoutID = id
			return
		}
	}
}

// ActiveLayout returns a copy of the active layout, falling back to the first
// layout when the selector is stale.
func (s *Store) ActiveLayout() domain.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneLayout(s.activeLayout())
}

func (s *Store) activeLayout() domain.Layout {
	for _, l := range s.layouts {
		if l.ID == s.activeLayoutID {
			return l
		}
	}
	return s.layouts[0]
}

func (s *Store) replaceActive(next domain.Layout) {
	for i, l := range s.layouts {
		if l.ID == next.ID {
			s.layouts[i] = next
			return
		}
	}
}

// UpdateActiveLayout merges the patch into the active layout only.
func (s *Store) UpdateActiveLayout(patch LayoutPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.activeLayout()
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Tables != nil {
		l.Tables = domain.CloneTables(patch.Tables)
	}
	if patch.Assignments != nil {
		l.Assignments = domain.CloneAssignments(patch.Assignments)
	}
	if patch.GridCols != nil {
		cols := *patch.GridCols
		if cols < 1 {
			cols = 1
		}
		if cols > 4 {
			cols = 4
		}
		l.GridCols = cols
	}
	s.replaceActive(l)
}

// AddGuest appends a guest to the roster, generating an id when absent.
func (s *Store) AddGuest(g domain.Guest) domain.Guest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = domain.NewGuestID()
	}
	s.guests = append(s.guests, g)
	return g
}

// UpdateGuest replaces the fields of an existing guest; unknown ids no-op.
func (s *Store) UpdateGuest(g domain.Guest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.guests {
		if s.guests[i].ID == g.ID {
			s.guests[i] = g
			return
		}
	}
}

// ToggleTentative flips a guest's tentative flag.
func (s *Store) ToggleTentative(guestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.guests {
		if s.guests[i].ID == guestID {
			s.guests[i].IsTentative = !s.guests[i].IsTentative
			return
		}
	}
}

// DeleteGuest removes a guest from the roster and from every layout's
// assignment map, so assignments never reference a nonexistent guest.
// Deleting an unknown guest is a no-op.
func (s *Store) DeleteGuest(guestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.layouts = engine.UnassignAll(s.layouts, guestID)

	kept := s.guests[:0]
	for _, g := range s.guests {
		if g.ID != guestID {
			kept = append(kept, g)
		}
	}
	s.guests = kept
}

// AssignGuest applies the seat-drop operation to the active layout.
func (s *Store) AssignGuest(guestID, tableID string, seatIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceActive(engine.Assign(s.activeLayout(), guestID, tableID, seatIndex))
}

// UnassignGuest drops the guest back to the unassigned list.
func (s *Store) UnassignGuest(guestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceActive(engine.Unassign(s.activeLayout(), guestID))
}

// AssignToTable seats the guest at the table's first empty seat; full or
// unknown tables no-op.
func (s *Store) AssignToTable(guestID, tableID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.activeLayout()
	if seat, ok := engine.FirstEmptySeat(l, tableID); ok {
		s.replaceActive(engine.Assign(l, guestID, tableID, seat))
	}
}

// ResizeTable clamps and applies a capacity change, evicting out-of-range
// occupants.
func (s *Store) ResizeTable(tableID string, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceActive(engine.ResizeCapacity(s.activeLayout(), tableID, capacity))
}

// ReorderTables moves a table within the active layout's sequence.
func (s *Store) ReorderTables(sourceTableID, targetTableID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceActive(engine.ReorderTables(s.activeLayout(), sourceTableID, targetTableID))
}

// AddTable appends a capacity-8 table named after its ordinal position.
func (s *Store) AddTable() domain.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.activeLayout()
	t := domain.Table{
		ID:       domain.NewTableID(),
		Name:     strconv.Itoa(len(l.Tables) + 1),
		Capacity: 8,
	}
	l.Tables = append(domain.CloneTables(l.Tables), t)
	s.replaceActive(l)
	return t
}

// RenameTable updates a table's display name.
func (s *Store) RenameTable(tableID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.activeLayout()
	tables := domain.CloneTables(l.Tables)
	for i := range tables {
		if tables[i].ID == tableID {
			tables[i].Name = name
		}
	}
	l.Tables = tables
	s.replaceActive(l)
}

// RemoveTable deletes a table and its seat assignments from the active layout.
func (s *Store) RemoveTable(tableID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.activeLayout()

	tables := make([]domain.Table, 0, len(l.Tables))
	for _, t := range l.Tables {
		if t.ID != tableID {
			tables = append(tables, t)
		}
	}
	assignments := domain.CloneAssignments(l.Assignments)
	delete(assignments, tableID)

	l.Tables = tables
	l.Assignments = assignments
	s.replaceActive(l)
}

// Guests returns a copy of the roster.
func (s *Store) Guests() []domain.Guest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Guest, len(s.guests))
	copy(out, s.guests)
	return out
}

// Unassigned returns the guests without a seat in the active layout, in
// roster order. Derived, never stored.
func (s *Store) Unassigned() []domain.Guest {
	s.mu.Lock()
	defer s.mu.Unlock()

	seated := s.seatedSet()
	out := []domain.Guest{}
	for _, g := range s.guests {
		if !seated[g.ID] {
			out = append(out, g)
		}
	}
	return out
}

// Stats counts the roster and the distinct guests seated in the active
// layout.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Total: len(s.guests), Placed: len(s.seatedSet())}
	for _, g := range s.guests {
		if g.IsTentative {
			st.Tentative++
		}
	}
	return st
}

func (s *Store) seatedSet() map[string]bool {
	seated := map[string]bool{}
	for _, seats := range s.activeLayout().Assignments {
		for _, guestID := range seats {
			if guestID != "" {
				seated[guestID] = true
			}
		}
	}
	return seated
}

// ImportCSV replaces the roster and the active layout's assignments from CSV
// text, keeping existing tables and appending newly referenced ones. A CSV
// with no usable rows leaves the state untouched.
func (s *Store) ImportCSV(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.activeLayout()
	res, ok := csvmap.Import(text, l.Tables)
	if !ok {
		return false
	}

	s.guests = res.Guests
	l.Tables = res.Tables
	l.Assignments = res.Assignments
	s.replaceActive(l)
	return true
}

// ExportCSV renders the roster and the active layout's placements.
func (s *Store) ExportCSV() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.activeLayout()
	return csvmap.Export(s.guests, l.Tables, l.Assignments)
}
