package collision

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Result is a snapshot of the outcome of an update.
type Result struct {
	Mode             CollisionMode
	NumberOfBoxTests int
	Contacts         []Contact
}

// Result returns the outcome of the last update.
func (f *Filter) Result() Result {
	contacts := make([]Contact, len(f.pairs))
	copy(contacts, f.pairs)
	return Result{Mode: f.cfg.CollisionMode, NumberOfBoxTests: f.numberOfBoxTests, Contacts: contacts}
}

// String returns a table with one row per contact followed by the totals.
func (r Result) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Cell 0", "Cell 1", "Contact"})
	for i, c := range r.Contacts {
		t.AppendRow(table.Row{i, c.CellIDs[0], c.CellIDs[1], formatPoints(c.Points)})
	}
	t.AppendFooter(table.Row{"", "", "Contacts", len(r.Contacts)})
	t.AppendFooter(table.Row{"", "", "Box Tests", r.NumberOfBoxTests})
	t.AppendFooter(table.Row{"", "", "Mode", r.Mode.String()})
	return t.Render()
}

func formatPoints(pts []r3.Vector) string {
	parts := make([]string, 0, len(pts))
	for _, p := range pts {
		parts = append(parts, fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z))
	}
	return strings.Join(parts, " - ")
}
