package plan

import "github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/model"

// ViewKind selects one of the fixed column orderings.
type ViewKind string

const (
	// ViewMain is the full per-machine planning grid.
	ViewMain ViewKind = "main"
	// ViewCleaning is the consolidated cleaning-instruction grid.
	ViewCleaning ViewKind = "cleaning"
)

// ColPrevDaySet is the derived pseudo-column showing whether the machine
// was set up on the prior workday. It has no backing store column.
const ColPrevDaySet = "prev_day_set"

// Column describes one grid column of a view.
type Column struct {
	Name     string `json:"name"`
	Caption  string `json:"caption"`
	Editable bool   `json:"editable"`
	Check    bool   `json:"check"`
}

// mainColumns mirrors the operator-facing planning grid; captions are the
// floor terms the operators use.
var mainColumns = []Column{
	{Name: model.ColMachineNo, Caption: "機番"},
	{Name: model.ColManufacturingCheck, Caption: "製造", Editable: true, Check: true},
	{Name: model.ColCleaningCheck, Caption: "洗浄", Editable: true, Check: true},
	{Name: ColPrevDaySet, Caption: "セット", Check: true},
	{Name: model.ColPartNumber, Caption: "品番"},
	{Name: model.ColProductName, Caption: "品名"},
	{Name: model.ColCustomerName, Caption: "客先名"},
	{Name: model.ColNextProcess, Caption: "次工程"},
	{Name: model.ColQuantity, Caption: "数量"},
	{Name: model.ColNotes, Caption: "備考", Editable: true},
	{Name: model.ColCleaningInstruction, Caption: "洗浄指示", Editable: true},
}

// cleaningColumns is the reduced grid the cleaning crew works from.
var cleaningColumns = []Column{
	{Name: model.ColMachineNo, Caption: "機番"},
	{Name: model.ColCleaningInstruction, Caption: "洗浄指示", Editable: true},
	{Name: model.ColCleaningCheck, Caption: "洗浄", Editable: true, Check: true},
	{Name: model.ColPartNumber, Caption: "品番"},
	{Name: model.ColProductName, Caption: "品名"},
	{Name: model.ColNotes, Caption: "備考", Editable: true},
}

// Columns returns the fixed ordered column list for a view kind.
func Columns(kind ViewKind) []Column {
	switch kind {
	case ViewCleaning:
		return cleaningColumns
	default:
		return mainColumns
	}
}
