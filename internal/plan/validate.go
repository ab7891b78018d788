package plan

import (
	"fmt"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/config"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/model"
)

// Normalize validates a raw cell value against the column's domain and
// coerces it to the column's Go type. Check columns take booleans,
// cleaning_instruction takes the single-character set {"", "1".."4"},
// and notes takes free text unless the configuration restricts it to the
// enumerated choices. Rejection happens here, before the optimistic apply.
func Normalize(display *config.DisplayConfig, column string, value any) (any, error) {
	if !model.Editable(column) {
		return nil, fmt.Errorf("column %q is not editable", column)
	}

	if model.CheckColumn(column) {
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%s requires a boolean value, got %T", column, value)
		}
		return b, nil
	}

	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%s requires a string value, got %T", column, value)
	}

	switch column {
	case model.ColCleaningInstruction:
		if !model.ValidInstruction(s) {
			return nil, fmt.Errorf("cleaning_instruction must be one of \"\", \"1\"..\"4\", got %q", s)
		}
	case model.ColNotes:
		if display != nil && display.RestrictNotes && s != "" {
			allowed := false
			for _, choice := range display.NotesChoices {
				if s == choice {
					allowed = true
					break
				}
			}
			if !allowed {
				return nil, fmt.Errorf("notes value %q is not an allowed choice", s)
			}
		}
	}
	return s, nil
}
