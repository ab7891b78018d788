package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/model"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/plan"
)

type cellPayload struct {
	Value any        `json:"value"`
	Style plan.Style `json:"style"`
}

type viewRowsPayload struct {
	Columns []plan.Column   `json:"columns"`
	Rows    [][]cellPayload `json:"rows"`
}

type mainViewPayload struct {
	Columns []plan.Column     `json:"columns"`
	Shards  [][][]cellPayload `json:"shards"`
}

type planResponse struct {
	Date     string          `json:"date"`
	Count    int             `json:"count"`
	Main     mainViewPayload `json:"main"`
	Cleaning viewRowsPayload `json:"cleaning"`
}

// GetPlan handles GET /api/plan?date=YYYY-MM-DD: loads the date into the
// row cache and returns the rendered views.
func (h *Handler) GetPlan(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	count, err := h.session.LoadDate(c.Request.Context(), date)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	main := h.session.View(plan.ViewMain)
	shards := make([][][]cellPayload, 0, h.cfg.Display.ShardCount)
	for i := 0; i < h.cfg.Display.ShardCount; i++ {
		shards = append(shards, renderRows(main.Shard(i)))
	}

	cleaning := h.session.View(plan.ViewCleaning)
	c.JSON(http.StatusOK, planResponse{
		Date:  date,
		Count: count,
		Main: mainViewPayload{
			Columns: main.Columns(),
			Shards:  shards,
		},
		Cleaning: viewRowsPayload{
			Columns: cleaning.Columns(),
			Rows:    renderRows(cleaning),
		},
	})
}

func renderRows(v *plan.View) [][]cellPayload {
	rows := make([][]cellPayload, v.RowCount())
	for r := range rows {
		cells := make([]cellPayload, v.ColumnCount())
		for col := range cells {
			value, _ := v.CellValue(r, col)
			cells[col] = cellPayload{Value: value, Style: v.CellStyle(r, col)}
		}
		rows[r] = cells
	}
	return rows
}

type cellEditRequest struct {
	RecordID int64  `json:"record_id" binding:"required"`
	Column   string `json:"column" binding:"required"`
	Value    any    `json:"value"`
}

// PatchCell handles PATCH /api/plan/cells: validates the edit, applies it
// to the cache optimistically and queues the persist. The response does
// not wait for the store write; a failed write surfaces through the
// status feed and a forced reload.
func (h *Handler) PatchCell(c *gin.Context) {
	var req cellEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.session.Edit(req.RecordID, req.Column, req.Value); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

// GetUnprocessed handles GET /api/plan/unprocessed?check=manufacturing|cleaning.
func (h *Handler) GetUnprocessed(c *gin.Context) {
	kind, err := model.ParseCheckKind(c.Query("check"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lines": plan.LineHeaders(h.cfg.Display.Lines),
		"rows":  h.session.Unprocessed(kind),
	})
}
