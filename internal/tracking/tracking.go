package tracking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"ewaste-tracking-backend/internal/store"
)

// Stage is one step of the public recycling narrative.
type Stage struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// narrative is the fixed four-stage sequence shown to every public caller.
// It is descriptive text, deliberately independent of the stored status.
var narrative = []Stage{
	{Title: "Received", Detail: "Device received at LetsCycleToRecycle center"},
	{Title: "Under Recycle Check", Detail: "Technician inspecting components"},
	{Title: "In Laboratory", Detail: "Hazardous materials being processed"},
	{Title: "Recycled", Detail: "Metals recovered and logged"},
}

// DeviceView is the read-only composed view returned to public callers.
type DeviceView struct {
	DeviceType   string  `json:"type"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	SerialNo     string  `json:"serial_no"`
	HazardClass  string  `json:"hazard_class"`
	WeightKg     float64 `json:"weight_kg"`
	Status       string  `json:"status"`
	DropOffSite  string  `json:"dropoff_site"`
	ReceivedDate string  `json:"received_date"`
	CustomerName string  `json:"customer_name"`
	Timeline     []Stage `json:"timeline"`
}

// Service answers public device lookups by MAC address.
type Service struct {
	store store.Store
}

// NewService creates a lookup service.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// deviceRow is the flat scan target for the cross-entity join.
type deviceRow struct {
	DeviceType  string
	Make        string
	Model       string
	SerialNo    string
	HazardClass string
	WeightKg    float64
	Status      string
	DropOffSite string
	OrderedAt   time.Time
	FirstName   string
	LastName    string
}

// FindByMAC looks up a device by its hardware MAC address, joining device,
// order line, order and customer in one read. Not-found and store errors
// both yield nil: the public caller only ever sees "absent".
func (s *Service) FindByMAC(ctx context.Context, macAddr string) *DeviceView {
	macAddr = strings.TrimSpace(macAddr)
	if macAddr == "" {
		return nil
	}

	var row deviceRow
	err := s.store.DB().WithContext(ctx).
		Table("devices").
		Select("devices.device_type, devices.make, devices.model, devices.serial_no, " +
			"devices.hazard_class, devices.weight_kg, devices.status, " +
			"recycling_orders.drop_off_site, recycling_orders.ordered_at, " +
			"customers.first_name, customers.last_name").
		Joins("JOIN order_lines ON order_lines.device_id = devices.id").
		Joins("JOIN recycling_orders ON recycling_orders.id = order_lines.order_id").
		Joins("JOIN customers ON customers.id = recycling_orders.customer_id").
		Where("devices.mac_addr = ?", macAddr).
		Take(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("device lookup failed for mac %q: %v", macAddr, err)
		}
		return nil
	}

	return &DeviceView{
		DeviceType:   row.DeviceType,
		Make:         row.Make,
		Model:        row.Model,
		SerialNo:     row.SerialNo,
		HazardClass:  row.HazardClass,
		WeightKg:     row.WeightKg,
		Status:       row.Status,
		DropOffSite:  row.DropOffSite,
		ReceivedDate: row.OrderedAt.Format("2006-01-02"),
		CustomerName: strings.TrimSpace(row.FirstName + " " + row.LastName),
		Timeline:     narrative,
	}
}
