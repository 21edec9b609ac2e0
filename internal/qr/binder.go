package qr

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// Renderer produces and durably stores a scannable image encoding the
// given URL under the given file name. The binder never sees image bytes.
type Renderer interface {
	Render(url, filename string) error
}

// PNGRenderer writes QR code PNGs into a local directory.
type PNGRenderer struct {
	Dir string
}

// NewPNGRenderer creates the target directory if needed.
func NewPNGRenderer(dir string) (*PNGRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create qr directory %q: %w", dir, err)
	}
	return &PNGRenderer{Dir: dir}, nil
}

// Render encodes the URL as a QR code PNG and writes it to disk.
func (r *PNGRenderer) Render(url, filename string) error {
	path := filepath.Join(r.Dir, filename)
	if err := qrcode.WriteFile(url, qrcode.Medium, 256, path); err != nil {
		return fmt.Errorf("failed to write qr code %q: %w", path, err)
	}
	return nil
}

// Binder derives the public tracking URL for a device and requests a
// scannable code artifact for it.
type Binder struct {
	baseTrackURL string
	renderer     Renderer
}

// NewBinder creates a binder. baseTrackURL must end with a path separator;
// the MAC address is appended verbatim.
func NewBinder(baseTrackURL string, renderer Renderer) *Binder {
	return &Binder{baseTrackURL: baseTrackURL, renderer: renderer}
}

// TrackURL returns the public tracking address for a MAC address.
func (b *Binder) TrackURL(macAddr string) string {
	return b.baseTrackURL + macAddr
}

// Bind renders the tracking code for the device and returns the artifact
// name to store on the device row. A renderer failure propagates so the
// enclosing intake transaction aborts before the device row is written.
func (b *Binder) Bind(macAddr string, deviceID int64) (string, error) {
	filename := fmt.Sprintf("%d.png", deviceID)
	if err := b.renderer.Render(b.TrackURL(macAddr), filename); err != nil {
		return "", err
	}
	return filename, nil
}
