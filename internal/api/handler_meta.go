package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/plan"
)

// GetMeta handles GET /api/meta: the static display metadata the UI needs
// to render the grids. This is the only cacheable surface; plan data
// itself mutates with every edit.
func (h *Handler) GetMeta(c *gin.Context) {
	colors := make(map[string]string, len(h.cfg.Display.Colors)+6)
	for _, key := range []string{
		"instruction_1", "instruction_2", "instruction_3", "instruction_4",
		"set_fg_today", "set_fg_other_day",
	} {
		if color, ok := h.cfg.Display.Color(key); ok {
			colors[key] = color
		}
	}
	for key, color := range h.cfg.Display.Colors {
		colors[key] = color
	}

	c.JSON(http.StatusOK, gin.H{
		"lines":          plan.LineHeaders(h.cfg.Display.Lines),
		"shard_count":    h.cfg.Display.ShardCount,
		"colors":         colors,
		"notes_choices":  h.cfg.Display.NotesChoices,
		"restrict_notes": h.cfg.Display.RestrictNotes,
		"views": gin.H{
			"main":     plan.Columns(plan.ViewMain),
			"cleaning": plan.Columns(plan.ViewCleaning),
		},
	})
}
