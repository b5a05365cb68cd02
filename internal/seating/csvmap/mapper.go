// Package csvmap converts between the flat CSV exchange format and the
// in-memory seating model.
//
// The format is deliberately primitive: UTF-8 with BOM, comma separated, no
// quoting (values must not contain commas), Japanese header and labels. Fields
// per row: name, side, category, title, table name, 1-based seat number, note.
package csvmap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
)

const (
	bom             = "\ufeff"
	header          = "氏名,側,カテゴリー,肩書き,テーブル,席番号,備考"
	labelGroom      = "新郎"
	labelBride      = "新婦"
	labelUnplaced   = "未配置"
	labelNoSeat     = "-"
	tentativeMarker = "検討中"
)

// Result is the outcome of an Import: a full replacement roster and
// assignment map for the active layout, plus the table set extended with any
// newly referenced tables.
type Result struct {
	Guests      []domain.Guest
	Tables      []domain.Table
	Assignments domain.AssignmentMap
}

// Import parses CSV text against the current table set. The first line is a
// header and is discarded. Rows with a blank name are skipped; a row with an
// unparseable seat number still imports the guest, dropping only the
// placement. Unknown table names create capacity-8 tables on the fly, and an
// explicit seat number past a table's capacity grows the table to fit
// (import bypasses the manual 4..12 clamp).
//
// ok is false when no guest row was usable; callers must leave their state
// untouched in that case.
func Import(text string, existingTables []domain.Table) (Result, bool) {
	lines := strings.Split(strings.TrimPrefix(text, bom), "\n")
	if len(lines) <= 1 {
		return Result{}, false
	}

	res := Result{
		Guests:      []domain.Guest{},
		Tables:      domain.CloneTables(existingTables),
		Assignments: domain.AssignmentMap{},
	}

	stamp := time.Now().UnixMilli()
	for idx, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		field := func(i int) string {
			if i < len(fields) {
				return strings.TrimSpace(fields[i])
			}
			return ""
		}

		name := field(0)
		if name == "" {
			continue
		}
		sideToken := field(1)
		note := field(6)

		side := domain.SideGroom
		if sideToken == labelBride || sideToken == domain.SideBride {
			side = domain.SideBride
		}

		guestID := fmt.Sprintf("csv-%d-%d", stamp, idx)
		res.Guests = append(res.Guests, domain.Guest{
			ID:          guestID,
			Name:        name,
			Side:        side,
			Category:    field(2),
			Title:       field(3),
			Special:     note,
			IsTentative: strings.Contains(note, tentativeMarker),
		})

		tableName := field(4)
		if tableName == "" || tableName == labelUnplaced || tableName == labelNoSeat {
			continue
		}

		ti := findTableByName(res.Tables, tableName)
		if ti < 0 {
			res.Tables = append(res.Tables, domain.Table{
				ID:       domain.AutoTableID(tableName),
				Name:     tableName,
				Capacity: 8,
			})
			ti = len(res.Tables) - 1
		}

		seatNum, err := strconv.Atoi(field(5))
		seatIndex := seatNum - 1
		if err != nil || seatIndex < 0 {
			continue
		}

		if seatIndex >= res.Tables[ti].Capacity {
			res.Tables[ti].Capacity = seatIndex + 1
		}

		tableID := res.Tables[ti].ID
		if res.Assignments[tableID] == nil {
			res.Assignments[tableID] = map[int]string{}
		}
		res.Assignments[tableID][seatIndex] = guestID
	}

	return res, len(res.Guests) > 0
}

// Export renders the roster in list order, one row per guest, with the seat
// placement of the given layout. Unplaced guests get 未配置 / "-" placeholders
// and tentative guests get a [検討中] prefix on the note column. The output
// starts with a BOM so spreadsheet apps pick up the encoding.
func Export(guests []domain.Guest, tables []domain.Table, assignments domain.AssignmentMap) string {
	tableNames := make(map[string]string, len(tables))
	for _, t := range tables {
		tableNames[t.ID] = t.Name
	}

	locations := make(map[string]struct {
		tableID string
		seat    int
	}, len(guests))
	for tableID, seats := range assignments {
		for idx, guestID := range seats {
			if guestID != "" {
				locations[guestID] = struct {
					tableID string
					seat    int
				}{tableID, idx}
			}
		}
	}

	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(header)
	b.WriteString("\n")

	for _, g := range guests {
		tableName := labelUnplaced
		seatNo := labelNoSeat
		if loc, ok := locations[g.ID]; ok {
			if name := tableNames[loc.tableID]; name != "" {
				tableName = name
			}
			seatNo = strconv.Itoa(loc.seat + 1)
		}

		sideLabel := labelGroom
		if g.Side == domain.SideBride {
			sideLabel = labelBride
		}

		note := g.Special
		if g.IsTentative {
			note = "[" + tentativeMarker + "] " + note
		}

		b.WriteString(strings.Join([]string{g.Name, sideLabel, g.Category, g.Title, tableName, seatNo, note}, ","))
		b.WriteString("\n")
	}

	return b.String()
}

func findTableByName(tables []domain.Table, name string) int {
	for i, t := range tables {
		if t.Name == name {
			return i
		}
	}
	return -1
}
