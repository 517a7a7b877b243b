package quectel

//go:generate go tool mockgen -source=transport.go -destination=mock.go -package=quectel

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Transport represents an established, bidirectional byte stream to the
// modem's AT command port.
//
// A Transport is assumed to be already connected and ready for use. Typical
// implementations are serial ports and in-memory fakes used for testing.
// Reads must eventually return (with data, zero bytes, or an error) rather
// than block forever, so a serial implementation needs a read timeout.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport to the modem.
//
// Dialer abstracts how the connection is created (serial port, test double)
// and is used during Modem construction only.
type Dialer interface {
	// Dial creates and returns a connected Transport. It may perform
	// blocking operations and should respect cancellation and deadlines
	// provided by the context.
	Dial(ctx context.Context) (Transport, error)
}

// SerialDialer opens the modem's AT command port over a serial device
// using go.bug.st/serial.
type SerialDialer struct {
	// Device is the serial device path, e.g. /dev/ttyUSB2
	Device string
	// BaudRate defaults to 115200
	BaudRate int
	// ReadTimeout bounds a single port read. Defaults to 200ms; command
	// deadlines are enforced separately by the Modem.
	ReadTimeout time.Duration
}

func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baud := d.BaudRate
	if baud == 0 {
		baud = 115200
	}
	port, err := serial.Open(d.Device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Device, err)
	}

	readTimeout := d.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 200 * time.Millisecond
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", d.Device, err)
	}

	return port, nil
}

// AutoDetect probes candidate serial devices for a Quectel AT command port
// by sending ATI and looking for the manufacturer name in the response.
// Returns the first matching device path.
func AutoDetect(ctx context.Context, pattern string) (string, error) {
	if pattern == "" {
		pattern = "/dev/ttyUSB*"
	}
	candidates, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("glob %q: %w", pattern, err)
	}

	for _, device := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		probe := func() bool {
			m, err := New(ctx, Config{
				Dialer:    SerialDialer{Device: device},
				ATTimeout: 2 * time.Second,
			})
			if err != nil {
				return false
			}
			defer m.Close()

			response, err := m.Raw(ctx, "ATI")
			return err == nil && strings.Contains(response, "Quectel")
		}
		if probe() {
			return device, nil
		}
	}

	return "", ErrNoModemFound
}
