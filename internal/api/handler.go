package api

import (
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/config"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/session"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	session *session.Session
	cfg     *config.Config
}

// NewHandler creates a new API handler.
func NewHandler(s *session.Session, cfg *config.Config) *Handler {
	return &Handler{
		session: s,
		cfg:     cfg,
	}
}
