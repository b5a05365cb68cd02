package domain

// DefaultLayoutID is the id of the layout every new project starts with.
const DefaultLayoutID = "l1"

func defaultTables() []Table {
	return []Table{
		{ID: "t1", Name: "松", Capacity: 8},
		{ID: "t2", Name: "竹", Capacity: 8},
		{ID: "t3", Name: "梅", Capacity: 8},
		{ID: "t4", Name: "蘭", Capacity: 8},
	}
}

// DefaultProject is what a read for an unknown project id resolves to: one
// layout with four fixed tables and an empty roster. Absence is never an
// error.
func DefaultProject(projectID string) Project {
	return Project{
		ProjectID: projectID,
		Guests:    []Guest{},
		Layouts: []Layout{
			{
				ID:          DefaultLayoutID,
				Name:        "基本プラン",
				Tables:      defaultTables(),
				Assignments: AssignmentMap{},
				GridCols:    2,
			},
		},
		ActiveLayoutID: DefaultLayoutID,
		UpdatedAt:      NowISO(),
	}
}

// SeedProject is the client-side fallback used when loading fails entirely:
// the default project pre-populated with three sample guests so the screen is
// not empty offline.
func SeedProject(projectID string) Project {
	p := DefaultProject(projectID)
	p.Guests = []Guest{
		{ID: "g1", Name: "佐藤 太郎", Side: SideGroom, Category: "主賓", Title: "株式会社ABC 代表"},
		{ID: "g2", Name: "田中 一郎", Side: SideGroom, Category: "職場", Title: "部長", Special: "allergy"},
		{ID: "g3", Name: "鈴木 幸子", Side: SideBride, Category: "親族", Title: "伯母", Special: "wheelchair", IsTentative: true},
	}
	return p
}
