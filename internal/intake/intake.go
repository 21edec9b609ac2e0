package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"ewaste-tracking-backend/config"
	"ewaste-tracking-backend/internal/model"
	"ewaste-tracking-backend/internal/parse"
	"ewaste-tracking-backend/internal/qr"
	"ewaste-tracking-backend/internal/store"
)

// ErrUnknownCaller is returned when the supplied caller identity does not
// resolve to a staff record. Nothing is written in that case.
var ErrUnknownCaller = errors.New("unknown caller identity")

// OrderLine constants for the single-device intake workflow.
const (
	actionRecycle = "Recycle"
	firstLineNo   = 1
)

// Fields carries the raw intake form values. All values are strings as
// submitted; normalization and coercion happen inside Register.
type Fields struct {
	MACAddr       string
	DeviceType    string
	Make          string
	Model         string
	SerialNo      string
	CustomerName  string
	CustomerEmail string
	DropOffSite   string
	HazardClass   string
	Status        string
	WeightKg      string
	Notes         string
}

// Result is the success payload of an intake.
type Result struct {
	DeviceID int64
	QRCode   string
	MACAddr  string
}

// Service coordinates the intake transaction: employee resolution,
// customer dedup, key allocation, tracking-code binding and the three
// record inserts, all as one atomic unit.
type Service struct {
	store    store.Store
	binder   *qr.Binder
	defaults config.TrackingConfig
}

// NewService creates an intake service.
func NewService(s store.Store, binder *qr.Binder, defaults config.TrackingConfig) *Service {
	return &Service{store: s, binder: binder, defaults: defaults}
}

// TrackURL returns the public tracking address for a registered device.
func (s *Service) TrackURL(macAddr string) string {
	return s.binder.TrackURL(macAddr)
}

// Register records a newly received device on behalf of the given caller.
// On any failure the whole transaction rolls back: no customer, order,
// device or order line from this call remains observable.
func (s *Service) Register(ctx context.Context, callerEmail string, f Fields) (Result, error) {
	var res Result

	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		// Resolve the caller before any write, so rejected requests never
		// allocate keys or render artifacts.
		var emp model.Employee
		if err := tx.First(&emp, "email = ?", strings.TrimSpace(callerEmail)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %q", ErrUnknownCaller, callerEmail)
			}
			return fmt.Errorf("failed to resolve caller %q: %w", callerEmail, err)
		}

		n := s.normalize(f)

		customerID, err := resolveCustomer(tx, n.CustomerName, n.CustomerEmail)
		if err != nil {
			return err
		}

		orderID, err := store.NextID(tx, store.ClassOrder)
		if err != nil {
			return err
		}
		order := model.RecyclingOrder{
			ID:          orderID,
			OrderedAt:   time.Now().UTC(),
			CustomerID:  customerID,
			EmployeeID:  emp.ID,
			DropOffSite: n.DropOffSite,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create recycling order: %w", err)
		}

		deviceID, err := store.NextID(tx, store.ClassDevice)
		if err != nil {
			return err
		}

		// Bind the tracking code before the device insert so a committed
		// device row always references an existing artifact.
		qrName, err := s.binder.Bind(n.MACAddr, deviceID)
		if err != nil {
			return fmt.Errorf("failed to bind tracking code for device %d: %w", deviceID, err)
		}

		device := model.Device{
			ID:          deviceID,
			DeviceType:  n.DeviceType,
			Make:        n.Make,
			Model:       n.Model,
			SerialNo:    n.SerialNo,
			HazardClass: n.HazardClass,
			WeightKg:    n.WeightKg,
			Status:      n.Status,
			MACAddr:     n.MACAddr,
			QRCode:      qrName,
			CustomerID:  customerID,
		}
		if err := tx.Create(&device).Error; err != nil {
			return fmt.Errorf("failed to create device: %w", err)
		}

		line := model.OrderLine{
			OrderID:    orderID,
			LineNo:     firstLineNo,
			DeviceID:   deviceID,
			ActionCode: actionRecycle,
			Qty:        1,
			Notes:      n.Notes,
		}
		if err := tx.Create(&line).Error; err != nil {
			return fmt.Errorf("failed to create order line: %w", err)
		}

		res = Result{DeviceID: deviceID, QRCode: qrName, MACAddr: n.MACAddr}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// normalizedFields holds the intake values after trimming and coercion.
type normalizedFields struct {
	MACAddr       string
	DeviceType    string
	Make          string
	Model         string
	SerialNo      string
	CustomerName  string
	CustomerEmail string
	DropOffSite   string
	HazardClass   string
	Status        string
	WeightKg      float64
	Notes         string
}

// normalize trims every field and coerces blanks to the configured intake
// defaults. Malformed weight text never fails an intake.
func (s *Service) normalize(f Fields) normalizedFields {
	n := normalizedFields{
		MACAddr:       strings.TrimSpace(f.MACAddr),
		DeviceType:    strings.TrimSpace(f.DeviceType),
		Make:          strings.TrimSpace(f.Make),
		Model:         strings.TrimSpace(f.Model),
		SerialNo:      strings.TrimSpace(f.SerialNo),
		CustomerName:  strings.TrimSpace(f.CustomerName),
		CustomerEmail: strings.TrimSpace(f.CustomerEmail),
		DropOffSite:   strings.TrimSpace(f.DropOffSite),
		HazardClass:   strings.TrimSpace(f.HazardClass),
		Status:        strings.TrimSpace(f.Status),
		WeightKg:      parse.ParseWeight(f.WeightKg, 1.0),
		Notes:         strings.TrimSpace(f.Notes),
	}
	if n.DropOffSite == "" {
		n.DropOffSite = s.defaults.DefaultDropOffSite
	}
	if n.HazardClass == "" {
		n.HazardClass = s.defaults.DefaultHazardClass
	}
	if n.Status == "" {
		n.Status = s.defaults.DefaultStatus
	}
	return n
}
