package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ewaste-tracking-backend/config"
	"ewaste-tracking-backend/internal/db"
	"ewaste-tracking-backend/internal/intake"
	"ewaste-tracking-backend/internal/model"
	"ewaste-tracking-backend/internal/qr"
	"ewaste-tracking-backend/internal/store"
	"ewaste-tracking-backend/internal/tracking"
)

const testEmployee = "tech01@letscycle.example"

var testDBSeq int64

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			RateLimitPerSec: 1000, // keep tests out of the limiter
			RateLimitBurst:  1000,
			CacheTTLSeconds: 60,
		},
		Tracking: config.TrackingConfig{
			BaseTrackURL:       "http://localhost:8080/track/",
			QRDir:              t.TempDir(),
			DefaultDropOffSite: "Main Facility",
			DefaultHazardClass: "Medium",
			DefaultStatus:      "Received",
		},
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	require.NoError(t, gormDB.Create(&model.Employee{Email: testEmployee, FullName: "Lab Technician 01", Role: "Tech"}).Error)

	cfg := testConfig(t)
	renderer, err := qr.NewPNGRenderer(cfg.Tracking.QRDir)
	require.NoError(t, err)

	appStore := store.NewGormStore(gormDB)
	binder := qr.NewBinder(cfg.Tracking.BaseTrackURL, renderer)
	intakeSvc := intake.NewService(appStore, binder, cfg.Tracking)
	trackingSvc := tracking.NewService(appStore)

	return NewRouter(cfg, intakeSvc, trackingSvc), gormDB
}

func postIntake(t *testing.T, router *gin.Engine, employee string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/intake", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if employee != "" {
		req.Header.Set("X-Employee-Email", employee)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterDeviceEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := postIntake(t, router, testEmployee, map[string]string{
		"mac_address":    "9a:4b:7c:12:ff:09",
		"device_type":    "Laptop",
		"make":           "Lenovo",
		"model":          "T480",
		"serial_no":      "SN-001",
		"customer_name":  "James Smith",
		"customer_email": "james@example.com",
		"weight_kg":      "2.5",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		DeviceID int64  `json:"device_id"`
		QRCode   string `json:"qr_code"`
		MACAddr  string `json:"mac_addr"`
		TrackURL string `json:"track_url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "9a:4b:7c:12:ff:09", resp.MACAddr)
	assert.Equal(t, fmt.Sprintf("%d.png", resp.DeviceID), resp.QRCode)
	assert.Equal(t, "http://localhost:8080/track/9a:4b:7c:12:ff:09", resp.TrackURL)
}

func TestRegisterDeviceRequiresEmployeeHeader(t *testing.T) {
	router, gormDB := setupRouter(t)

	w := postIntake(t, router, "", map[string]string{"mac_address": "aa:bb:cc:dd:ee:ff"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var devices int64
	gormDB.Model(&model.Device{}).Count(&devices)
	assert.Zero(t, devices)
}

func TestRegisterDeviceUnknownEmployee(t *testing.T) {
	router, gormDB := setupRouter(t)

	w := postIntake(t, router, "ghost@letscycle.example", map[string]string{"mac_address": "aa:bb:cc:dd:ee:ff"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var devices int64
	gormDB.Model(&model.Device{}).Count(&devices)
	assert.Zero(t, devices)
}

func TestRegisterDeviceRejectsMissingMAC(t *testing.T) {
	router, _ := setupRouter(t)

	w := postIntake(t, router, testEmployee, map[string]string{"device_type": "Laptop"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackDeviceEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	w := postIntake(t, router, testEmployee, map[string]string{
		"mac_address":   "9a:4b:7c:12:ff:09",
		"device_type":   "Laptop",
		"customer_name": "James Smith",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/track/9a:4b:7c:12:ff:09", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var view tracking.DeviceView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Laptop", view.DeviceType)
	assert.Equal(t, "James Smith", view.CustomerName)
	assert.Len(t, view.Timeline, 4)
}

func TestTrackDeviceNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/track/00:00:00:00:00:00", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrackDeviceQueryParam(t *testing.T) {
	router, _ := setupRouter(t)

	w := postIntake(t, router, testEmployee, map[string]string{
		"mac_address":   "11:22:33:44:55:66",
		"customer_name": "DIPINA",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/track?mac=11:22:33:44:55:66", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var view tracking.DeviceView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "DIPINA", view.CustomerName)
}

func TestServeQRCode(t *testing.T) {
	router, _ := setupRouter(t)

	w := postIntake(t, router, testEmployee, map[string]string{
		"mac_address": "77:88:99:aa:bb:cc",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		QRCode string `json:"qr_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/qr_codes/"+resp.QRCode, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.Bytes())
}
