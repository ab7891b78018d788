package plan

import (
	"fmt"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/config"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/model"
)

// Mutation is one cell edit awaiting persistence, emitted by a view after
// the optimistic in-memory apply.
type Mutation struct {
	RecordID int64  `json:"record_id"`
	Column   string `json:"column"`
	Value    any    `json:"value"`
}

// Style is the presentation metadata derived for one cell.
type Style struct {
	Background string `json:"background,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
}

// View exposes a grid contract (row/column count, cell read, cell edit,
// checkbox state, styling) over the shared row cache. A view never owns
// data; it projects whatever the cache currently holds, optionally
// restricted to one display shard.
type View struct {
	cache   *Cache
	kind    ViewKind
	cols    []Column
	display *config.DisplayConfig
	shard   int
	shards  int
}

// NewView creates a whole-list view of the given kind.
func NewView(cache *Cache, kind ViewKind, display *config.DisplayConfig) *View {
	return &View{
		cache:   cache,
		kind:    kind,
		cols:    Columns(kind),
		display: display,
		shard:   -1,
	}
}

// Shard returns a projection of the same view restricted to display
// shard i of the configured shard count.
func (v *View) Shard(i int) *View {
	shards := 3
	if v.display != nil && v.display.ShardCount > 0 {
		shards = v.display.ShardCount
	}
	w := *v
	w.shard = i
	w.shards = shards
	return &w
}

// Kind returns the view's column-set kind.
func (v *View) Kind() ViewKind { return v.kind }

// Columns returns the view's ordered column descriptors.
func (v *View) Columns() []Column { return v.cols }

// ColumnCount returns the number of grid columns.
func (v *View) ColumnCount() int { return len(v.cols) }

// RowCount returns the number of rows this view currently projects.
func (v *View) RowCount() int {
	n := v.cache.Len()
	if v.shard < 0 {
		return n
	}
	start, end := shardBounds(n, v.shard, v.shards)
	return end - start
}

// recordAt resolves a view-relative row index to the cached record.
func (v *View) recordAt(row int) (model.PlanRecord, bool) {
	if v.shard < 0 {
		return v.cache.At(row)
	}
	start, end := shardBounds(v.cache.Len(), v.shard, v.shards)
	i := start + row
	if row < 0 || i >= end {
		return model.PlanRecord{}, false
	}
	return v.cache.At(i)
}

func (v *View) column(col int) (Column, error) {
	if col < 0 || col >= len(v.cols) {
		return Column{}, fmt.Errorf("column index %d out of range", col)
	}
	return v.cols[col], nil
}

// CellValue returns the display value of one cell. Check columns yield
// booleans; the derived prev_day_set column yields the flat one-day
// "set on the prior workday" predicate.
func (v *View) CellValue(row, col int) (any, error) {
	c, err := v.column(col)
	if err != nil {
		return nil, err
	}
	rec, ok := v.recordAt(row)
	if !ok {
		return nil, fmt.Errorf("row index %d out of range", row)
	}
	if c.Name == ColPrevDaySet {
		return rec.SetLogically(), nil
	}
	value, known := rec.Field(c.Name)
	if !known {
		return nil, fmt.Errorf("unknown column %q", c.Name)
	}
	return value, nil
}

// CheckState returns the checkbox state of a check column cell.
func (v *View) CheckState(row, col int) (bool, error) {
	c, err := v.column(col)
	if err != nil {
		return false, err
	}
	if !c.Check {
		return false, fmt.Errorf("column %q is not a check column", c.Name)
	}
	value, err := v.CellValue(row, col)
	if err != nil {
		return false, err
	}
	b, _ := value.(bool)
	return b, nil
}

// SetCell validates and applies a cell edit to the cache (optimistic) and
// returns the mutation to hand to the update coordinator. No store I/O
// happens here; a failed downstream persist is reconciled by a reload.
func (v *View) SetCell(row, col int, value any) (Mutation, error) {
	c, err := v.column(col)
	if err != nil {
		return Mutation{}, err
	}
	if !c.Editable {
		return Mutation{}, fmt.Errorf("column %q is not editable", c.Name)
	}
	rec, ok := v.recordAt(row)
	if !ok {
		return Mutation{}, fmt.Errorf("row index %d out of range", row)
	}
	normalized, err := Normalize(v.display, c.Name, value)
	if err != nil {
		return Mutation{}, err
	}
	if err := v.cache.Apply(rec.ID, c.Name, normalized); err != nil {
		return Mutation{}, err
	}
	return Mutation{RecordID: rec.ID, Column: c.Name, Value: normalized}, nil
}

// AdvanceFrom returns the cell that keyboard focus should move to after a
// committed edit. Only the cleaning_instruction column auto-advances, to
// the same column in the next row.
func (v *View) AdvanceFrom(row, col int) (int, int, bool) {
	c, err := v.column(col)
	if err != nil || c.Name != model.ColCleaningInstruction {
		return 0, 0, false
	}
	if row+1 >= v.RowCount() {
		return 0, 0, false
	}
	return row + 1, col, true
}

// CellStyle derives the presentation metadata for one cell: instruction
// color coding and bolding on the machine-number column, material color on
// the part-number column, and the set-status color on the derived column.
func (v *View) CellStyle(row, col int) Style {
	c, err := v.column(col)
	if err != nil {
		return Style{}
	}
	rec, ok := v.recordAt(row)
	if !ok {
		return Style{}
	}

	var style Style
	switch c.Name {
	case model.ColMachineNo:
		style.Bold = true
		if rec.HasInstruction() {
			if color, ok := v.display.Color("instruction_" + rec.CleaningInstruction); ok {
				style.Background = color
			}
		}
	case model.ColPartNumber:
		if rec.MaterialID != "" {
			if color, ok := v.display.Color("material_" + rec.MaterialID); ok {
				style.Background = color
			}
		}
	case ColPrevDaySet:
		if rec.SetLogically() {
			key := "set_fg_other_day"
			if rec.CompletedOnAcquisitionDay() {
				key = "set_fg_today"
			}
			if color, ok := v.display.Color(key); ok {
				style.Background = color
			}
		}
	}
	return style
}
