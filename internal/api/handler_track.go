package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

const notFoundMessage = "Device ID not found. Please verify your MAC address or contact the recycling center."

// TrackDevice handles GET /track/:mac, the landing page behind the QR code.
func (h *Handler) TrackDevice(c *gin.Context) {
	h.respondWithLookup(c, c.Param("mac"))
}

// TrackDeviceQuery handles GET /api/track?mac=..., the manual search.
func (h *Handler) TrackDeviceQuery(c *gin.Context) {
	h.respondWithLookup(c, c.Query("mac"))
}

func (h *Handler) respondWithLookup(c *gin.Context, macAddr string) {
	view := h.tracking.FindByMAC(c.Request.Context(), macAddr)
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
		return
	}
	c.JSON(http.StatusOK, view)
}

// ServeQRCode handles GET /qr_codes/:filename, serving stored tracking-code
// images. The name is reduced to its base so the path cannot escape the
// artifact directory.
func (h *Handler) ServeQRCode(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == "/" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.File(filepath.Join(h.qrDir, filename))
}
