// Package engine holds the pure seat-assignment logic for a single layout.
// Every operation takes the current layout value and returns a new one; inputs
// are never mutated and malformed ids degrade to no-ops so stale drag events
// cannot crash a session.
package engine

import "github.com/wedding-seating/go-seating-backend/internal/seating/domain"

// Locate returns the (table, seat) currently holding guestID in the layout.
func Locate(l domain.Layout, guestID string) (tableID string, seatIndex int, ok bool) {
	for tID, seats := range l.Assignments {
		for idx, gID := range seats {
			if gID == guestID {
				return tID, idx, true
			}
		}
	}
	return "", 0, false
}

func findTable(tables []domain.Table, tableID string) (domain.Table, bool) {
	for _, t := range tables {
		if t.ID == tableID {
			return t, true
		}
	}
	return domain.Table{}, false
}

// Assign places guestID onto the target seat, applying the movement rules:
//
//   - target occupied, guest already seated: the two guests swap seats.
//   - target occupied, guest unseated: the occupant is bumped to unassigned
//     and the guest takes the seat.
//   - target empty, guest already seated: plain move.
//   - target empty, guest unseated: plain placement.
//
// Out-of-range seats and unknown tables or guests leave the layout unchanged.
func Assign(l domain.Layout, guestID, targetTableID string, targetSeatIndex int) domain.Layout {
	if guestID == "" {
		return l
	}

	table, found := findTable(l.Tables, targetTableID)
	if !found || targetSeatIndex < 0 || targetSeatIndex >= table.Capacity {
		return l
	}

	next := domain.CloneAssignments(l.Assignments)
	srcTable, srcSeat, hasSource := Locate(l, guestID)

	if next[targetTableID] == nil {
		next[targetTableID] = map[int]string{}
	}

	occupant, occupied := next[targetTableID][targetSeatIndex]
	switch {
	case occupied && hasSource:
		next[srcTable][srcSeat] = occupant
	case hasSource:
		delete(next[srcTable], srcSeat)
	}

	next[targetTableID][targetSeatIndex] = guestID
	l.Assignments = next
	return l
}

// Unassign removes guestID from its seat, if any. This is the explicit
// "drop back to the guest list" operation.
func Unassign(l domain.Layout, guestID string) domain.Layout {
	srcTable, srcSeat, ok := Locate(l, guestID)
	if !ok {
		return l
	}
	next := domain.CloneAssignments(l.Assignments)
	delete(next[srcTable], srcSeat)
	l.Assignments = next
	return l
}

// UnassignAll removes guestID from every layout's assignment map. Used by the
// guest-deletion cascade; idempotent.
func UnassignAll(layouts []domain.Layout, guestID string) []domain.Layout {
	out := make([]domain.Layout, len(layouts))
	for i, l := range layouts {
		next := domain.CloneAssignments(l.Assignments)
		for tID, seats := range next {
			for idx, gID := range seats {
				if gID == guestID {
					delete(next[tID], idx)
				}
			}
		}
		l.Assignments = next
		out[i] = l
	}
	return out
}

// ResizeCapacity sets a table's capacity, clamped to [MinCapacity,
// MaxCapacity], and evicts every assignment at a seat index that no longer
// exists. Remaining occupants keep their indices.
func ResizeCapacity(l domain.Layout, tableID string, newCapacity int) domain.Layout {
	if _, found := findTable(l.Tables, tableID); !found {
		return l
	}

	if newCapacity < domain.MinCapacity {
		newCapacity = domain.MinCapacity
	}
	if newCapacity > domain.MaxCapacity {
		newCapacity = domain.MaxCapacity
	}

	next := domain.CloneAssignments(l.Assignments)
	for idx := range next[tableID] {
		if idx >= newCapacity {
			delete(next[tableID], idx)
		}
	}

	tables := domain.CloneTables(l.Tables)
	for i := range tables {
		if tables[i].ID == tableID {
			tables[i].Capacity = newCapacity
		}
	}

	l.Tables = tables
	l.Assignments = next
	return l
}

// FirstEmptySeat returns the lowest unoccupied seat index of the table, or
// false if the table is full or unknown. Used when a guest is dropped onto a
// table rather than a specific seat.
func FirstEmptySeat(l domain.Layout, tableID string) (int, bool) {
	table, found := findTable(l.Tables, tableID)
	if !found {
		return 0, false
	}
	seats := l.Assignments[tableID]
	for i := 0; i < table.Capacity; i++ {
		if seats[i] == "" {
			return i, true
		}
	}
	return 0, false
}

// ReorderTables moves the source table to the target table's position in the
// layout's table sequence. The insertion index is computed before the source
// is removed, so dragging a table rightward lands it just after the target.
func ReorderTables(l domain.Layout, sourceTableID, targetTableID string) domain.Layout {
	if sourceTableID == targetTableID {
		return l
	}

	tables := domain.CloneTables(l.Tables)
	sourceIdx, targetIdx := -1, -1
	for i, t := range tables {
		if t.ID == sourceTableID {
			sourceIdx = i
		}
		if t.ID == targetTableID {
			targetIdx = i
		}
	}
	if sourceIdx < 0 || targetIdx < 0 {
		return l
	}

	moved := tables[sourceIdx]
	tables = append(tables[:sourceIdx], tables[sourceIdx+1:]...)
	if targetIdx > len(tables) {
		targetIdx = len(tables)
	}
	tables = append(tables[:targetIdx], append([]domain.Table{moved}, tables[targetIdx:]...)...)

	l.Tables = tables
	return l
}
