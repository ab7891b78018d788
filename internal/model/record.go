package model

import (
	"strings"
	"time"
)

// PlanRecord is one machine's production/cleaning status row for one
// acquisition date. Rows are provisioned by the upstream production
// planning system; this application only mutates the four editable
// fields (cleaning_instruction, notes and the two check flags).
type PlanRecord struct {
	ID                  int64  `gorm:"primaryKey" json:"id"`
	AcquisitionDate     string `gorm:"column:acquisition_date;index" json:"acquisition_date"`
	MachineNo           string `gorm:"column:machine_no" json:"machine_no"`
	SetDate             string `gorm:"column:set_date" json:"set_date"`
	CompletionDate      string `gorm:"column:completion_date" json:"completion_date"`
	PartNumber          string `gorm:"column:part_number" json:"part_number"`
	ProductName         string `gorm:"column:product_name" json:"product_name"`
	CustomerName        string `gorm:"column:customer_name" json:"customer_name"`
	NextProcess         string `gorm:"column:next_process" json:"next_process"`
	Quantity            string `gorm:"column:quantity" json:"quantity"`
	MaterialID          string `gorm:"column:material_id" json:"material_id"`
	CleaningInstruction string `gorm:"column:cleaning_instruction" json:"cleaning_instruction"`
	Notes               string `gorm:"column:notes" json:"notes"`
	ManufacturingCheck  bool   `gorm:"column:manufacturing_check" json:"manufacturing_check"`
	CleaningCheck       bool   `gorm:"column:cleaning_check" json:"cleaning_check"`
}

// TableName maps the model onto the externally owned production_plan table.
func (PlanRecord) TableName() string { return "production_plan" }

// HasInstruction reports whether a cleaning instruction is actually set.
// The stored "0" is a legacy sentinel and means "no instruction".
func (r *PlanRecord) HasInstruction() bool {
	return r.CleaningInstruction != "" && r.CleaningInstruction != "0"
}

// Awaiting reports whether the record still awaits processing for the
// given check kind: an instruction is set but the flag is not.
func (r *PlanRecord) Awaiting(kind CheckKind) bool {
	if !r.HasInstruction() {
		return false
	}
	switch kind {
	case CheckManufacturing:
		return !r.ManufacturingCheck
	case CheckCleaning:
		return !r.CleaningCheck
	}
	return false
}

// SetLogically reports whether the machine was set up on the prior
// workday, i.e. set_date equals acquisition_date minus one day.
func (r *PlanRecord) SetLogically() bool {
	setDate, ok := parseDay(r.SetDate)
	if !ok {
		return false
	}
	acqDate, ok := parseDay(r.AcquisitionDate)
	if !ok {
		return false
	}
	return setDate.Equal(acqDate.AddDate(0, 0, -1))
}

// CompletedOnAcquisitionDay reports whether completion_date falls on the
// acquisition date itself. Only meaningful when completion_date is set.
func (r *PlanRecord) CompletedOnAcquisitionDay() bool {
	completed, ok := parseDay(r.CompletionDate)
	if !ok {
		return false
	}
	acqDate, ok := parseDay(r.AcquisitionDate)
	if !ok {
		return false
	}
	return completed.Equal(acqDate)
}

// parseDay parses a stored date string, tolerating a trailing time component.
func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
