package api

import (
	"ewaste-tracking-backend/internal/intake"
	"ewaste-tracking-backend/internal/tracking"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	intake   *intake.Service
	tracking *tracking.Service
	qrDir    string
}

// NewHandler creates a new API handler.
func NewHandler(intakeSvc *intake.Service, trackingSvc *tracking.Service, qrDir string) *Handler {
	return &Handler{
		intake:   intakeSvc,
		tracking: trackingSvc,
		qrDir:    qrDir,
	}
}
