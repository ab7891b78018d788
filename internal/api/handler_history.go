package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/store"
)

// PostUndo handles POST /api/plan/undo.
func (h *Handler) PostUndo(c *gin.Context) {
	msg, err := h.session.Undo(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": msg})
}

// PostRedo handles POST /api/plan/redo.
func (h *Handler) PostRedo(c *gin.Context) {
	msg, err := h.session.Redo(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": msg})
}

type copyRequest struct {
	Column     string `json:"column"`
	SourceDate string `json:"source_date" binding:"required"`
	DestDate   string `json:"dest_date" binding:"required"`
}

// PostCopy handles POST /api/plan/copy: the bulk transactional copy of one
// column's values between two dates, keyed by machine number.
func (h *Handler) PostCopy(c *gin.Context) {
	var req copyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	count, err := h.session.CopyInstructions(c.Request.Context(), req.Column, req.SourceDate, req.DestDate)
	switch {
	case errors.Is(err, store.ErrSameDate), errors.Is(err, store.ErrUnknownColumn):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, store.ErrNoSourceData):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": count})
}
