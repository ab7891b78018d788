package model

import "fmt"

// Logical column names of the production_plan table.
const (
	ColID                  = "id"
	ColAcquisitionDate     = "acquisition_date"
	ColMachineNo           = "machine_no"
	ColSetDate             = "set_date"
	ColCompletionDate      = "completion_date"
	ColPartNumber          = "part_number"
	ColProductName         = "product_name"
	ColCustomerName        = "customer_name"
	ColNextProcess         = "next_process"
	ColQuantity            = "quantity"
	ColMaterialID          = "material_id"
	ColCleaningInstruction = "cleaning_instruction"
	ColNotes               = "notes"
	ColManufacturingCheck  = "manufacturing_check"
	ColCleaningCheck       = "cleaning_check"
)

// CheckKind names one of the two per-record completion flags.
type CheckKind string

const (
	CheckManufacturing CheckKind = ColManufacturingCheck
	CheckCleaning      CheckKind = ColCleaningCheck
)

// ParseCheckKind converts a column name into a CheckKind.
func ParseCheckKind(s string) (CheckKind, error) {
	switch s {
	case ColManufacturingCheck, "manufacturing":
		return CheckManufacturing, nil
	case ColCleaningCheck, "cleaning":
		return CheckCleaning, nil
	}
	return "", fmt.Errorf("unknown check kind %q", s)
}

// editableColumns is the whitelist of columns the UI may mutate.
var editableColumns = map[string]bool{
	ColCleaningInstruction: true,
	ColNotes:               true,
	ColManufacturingCheck:  true,
	ColCleaningCheck:       true,
}

// Editable reports whether the UI may mutate the given column.
func Editable(column string) bool { return editableColumns[column] }

// CheckColumn reports whether the column is one of the boolean check flags.
func CheckColumn(column string) bool {
	return column == ColManufacturingCheck || column == ColCleaningCheck
}

// ValidInstruction reports whether s is inside the cleaning_instruction
// input domain. The stored "0" sentinel is readable but never written back.
func ValidInstruction(s string) bool {
	switch s {
	case "", "1", "2", "3", "4":
		return true
	}
	return false
}

// Field returns the value of a logical column, typed per the record struct.
func (r *PlanRecord) Field(column string) (any, bool) {
	switch column {
	case ColID:
		return r.ID, true
	case ColAcquisitionDate:
		return r.AcquisitionDate, true
	case ColMachineNo:
		return r.MachineNo, true
	case ColSetDate:
		return r.SetDate, true
	case ColCompletionDate:
		return r.CompletionDate, true
	case ColPartNumber:
		return r.PartNumber, true
	case ColProductName:
		return r.ProductName, true
	case ColCustomerName:
		return r.CustomerName, true
	case ColNextProcess:
		return r.NextProcess, true
	case ColQuantity:
		return r.Quantity, true
	case ColMaterialID:
		return r.MaterialID, true
	case ColCleaningInstruction:
		return r.CleaningInstruction, true
	case ColNotes:
		return r.Notes, true
	case ColManufacturingCheck:
		return r.ManufacturingCheck, true
	case ColCleaningCheck:
		return r.CleaningCheck, true
	}
	return nil, false
}

// SetField applies a value to one of the editable columns. Values must
// already be normalized to the column's Go type.
func (r *PlanRecord) SetField(column string, value any) error {
	switch column {
	case ColCleaningInstruction:
		s, ok := value.(string)
		if !ok || !ValidInstruction(s) {
			return fmt.Errorf("invalid cleaning_instruction value %v", value)
		}
		r.CleaningInstruction = s
	case ColNotes:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("notes value must be a string, got %T", value)
		}
		r.Notes = s
	case ColManufacturingCheck:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("manufacturing_check value must be a boolean, got %T", value)
		}
		r.ManufacturingCheck = b
	case ColCleaningCheck:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("cleaning_check value must be a boolean, got %T", value)
		}
		r.CleaningCheck = b
	default:
		return fmt.Errorf("column %q is not editable", column)
	}
	return nil
}
