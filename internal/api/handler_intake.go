package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ewaste-tracking-backend/internal/intake"
)

// employeeHeader carries the authenticated caller's login handle. Session
// handling itself lives outside this service.
const employeeHeader = "X-Employee-Email"

type intakeRequest struct {
	MACAddress    string `json:"mac_address" binding:"required"`
	DeviceType    string `json:"device_type"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	SerialNo      string `json:"serial_no"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	DropOffSite   string `json:"dropoff_site"`
	HazardClass   string `json:"hazard_class"`
	Status        string `json:"status"`
	WeightKg      string `json:"weight_kg"`
	Notes         string `json:"notes"`
}

type intakeResponse struct {
	DeviceID int64  `json:"device_id"`
	QRCode   string `json:"qr_code"`
	MACAddr  string `json:"mac_addr"`
	TrackURL string `json:"track_url"`
}

// RegisterDevice handles POST /api/intake.
func (h *Handler) RegisterDevice(c *gin.Context) {
	caller := c.GetHeader(employeeHeader)
	if caller == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "employee identity is required"})
		return
	}

	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.intake.Register(c.Request.Context(), caller, intake.Fields{
		MACAddr:       req.MACAddress,
		DeviceType:    req.DeviceType,
		Make:          req.Make,
		Model:         req.Model,
		SerialNo:      req.SerialNo,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		DropOffSite:   req.DropOffSite,
		HazardClass:   req.HazardClass,
		Status:        req.Status,
		WeightKg:      req.WeightKg,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, intake.ErrUnknownCaller) {
			c.JSON(http.StatusForbidden, gin.H{"error": "unknown employee"})
			return
		}
		// Operator detail goes to the log; the caller only learns that the
		// save failed.
		log.Printf("device intake failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "There was a problem saving this device. Please try again or contact the system administrator.",
		})
		return
	}

	c.JSON(http.StatusCreated, intakeResponse{
		DeviceID: result.DeviceID,
		QRCode:   result.QRCode,
		MACAddr:  result.MACAddr,
		TrackURL: h.intake.TrackURL(result.MACAddr),
	})
}
