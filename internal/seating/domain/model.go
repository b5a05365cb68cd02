package domain

import "time"

// Side of the wedding party a guest belongs to.
const (
	SideGroom = "groom"
	SideBride = "bride"
)

// Capacity bounds enforced by manual table resizing. CSV import may grow a
// table past MaxCapacity to fit an explicit seat number.
const (
	MinCapacity = 4
	MaxCapacity = 12
)

// Guest is a roster entry. A guest exists independently of any layout; seat
// placement is recorded per layout in AssignmentMap.
type Guest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Side        string `json:"side"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Special     string `json:"special"`
	IsTentative bool   `json:"isTentative"`
}

// Table is a named table with a seat count. Seats are addressed by 0-based
// index < Capacity.
type Table struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// AssignmentMap maps table id -> seat index -> guest id. A missing seat key
// means the seat is empty. JSON object keys are strings, so the int seat keys
// marshal/unmarshal transparently.
type AssignmentMap map[string]map[int]string

// Layout is one floor-plan variant: an ordered table list, the seat
// assignments for those tables and the grid column count used for display.
type Layout struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Tables      []Table       `json:"tables"`
	Assignments AssignmentMap `json:"assignments"`
	GridCols    int           `json:"gridCols"`
}

// Project is the persisted document: the guest roster shared by all layouts,
// the layout variants and the active layout selector.
type Project struct {
	ProjectID      string   `json:"projectId"`
	Guests         []Guest  `json:"guests"`
	Layouts        []Layout `json:"layouts"`
	ActiveLayoutID string   `json:"activeLayoutId"`
	UpdatedAt      string   `json:"updatedAt"`
}

// NowISO returns the current UTC time in the millisecond ISO-8601 form the
// stored documents use ("2026-01-02T15:04:05.000Z").
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// CloneAssignments deep-copies an assignment map. Every mutation works on a
// copy so no two layouts ever alias the same seat map.
func CloneAssignments(a AssignmentMap) AssignmentMap {
	out := make(AssignmentMap, len(a))
	for tableID, seats := range a {
		cp := make(map[int]string, len(seats))
		for idx, guestID := range seats {
			cp[idx] = guestID
		}
		out[tableID] = cp
	}
	return out
}

// CloneTables copies a table slice.
func CloneTables(tables []Table) []Table {
	out := make([]Table, len(tables))
	copy(out, tables)
	return out
}

// CloneLayout deep-copies a layout.
func CloneLayout(l Layout) Layout {
	l.Tables = CloneTables(l.Tables)
	l.Assignments = CloneAssignments(l.Assignments)
	return l
}

// CloneProject deep-copies a project document.
func CloneProject(p Project) Project {
	guests := make([]Guest, len(p.Guests))
	copy(guests, p.Guests)
	p.Guests = guests

	layouts := make([]Layout, len(p.Layouts))
	for i, l := range p.Layouts {
		layouts[i] = CloneLayout(l)
	}
	p.Layouts = layouts
	return p
}
