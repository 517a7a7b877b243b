package quectel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vjt/quectel-5g-tools/at"
)

// Modem drives a Quectel cellular modem over a Transport. Every query is a
// synchronous AT command exchange: the command is written, response lines
// are collected until a final OK/ERROR line, and the raw text is handed to
// the decoders. The modem never emits unsolicited result codes for the
// commands used here, so no background read loop is needed.
//
// A Modem is not safe for concurrent use; callers poll it from one
// goroutine per device.
type Modem struct {
	transport Transport
	reader    *ctxReader
	scanner   *bufio.Scanner
	config    Config
	closed    bool
}

// ctxReader fails transport reads once the in-flight command context is
// done. Serial reads on a silent port return (0, nil) on their own read
// timeout, and without this gate the scanner keeps retrying them well past
// the command deadline.
type ctxReader struct {
	transport Transport
	ctx       context.Context
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if r.ctx != nil {
		if err := r.ctx.Err(); err != nil {
			return 0, err
		}
	}
	return r.transport.Read(p)
}

// New connects the transport and prepares the modem for use. Unless
// Config.SkipInit is set, it verifies the modem answers AT and disables
// command echo, which the response tokenizer relies on.
func New(ctx context.Context, config Config) (*Modem, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	transport, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}

	reader := &ctxReader{transport: transport}
	scanner := bufio.NewScanner(reader)
	scanner.Split(at.Splitter)

	m := &Modem{
		transport: transport,
		reader:    reader,
		scanner:   scanner,
		config:    config,
	}

	if !config.SkipInit {
		if err := m.init(ctx); err != nil {
			transport.Close()
			return nil, fmt.Errorf("initialize modem: %w", err)
		}
	}

	return m, nil
}

func (m *Modem) init(ctx context.Context) error {
	if _, err := m.exec(ctx, at.CmdAt); err != nil {
		return fmt.Errorf("modem not responding: %w", err)
	}
	if _, err := m.exec(ctx, "ATE0"); err != nil {
		return fmt.Errorf("could not disable echo: %w", err)
	}
	return nil
}

// Close shuts down the modem and releases the transport. After Close the
// modem cannot be reused.
func (m *Modem) Close() error {
	if m.closed {
		return ErrAlreadyClosed
	}
	m.closed = true
	return m.transport.Close()
}

// exec sends an AT command and collects response lines until a final line.
// The returned text contains every line including the terminator, joined
// with newlines. A final line other than OK yields ErrCommandFailed.
func (m *Modem) exec(ctx context.Context, cmd string) (string, error) {
	if m.closed {
		return "", ErrAlreadyClosed
	}

	if _, ok := ctx.Deadline(); !ok && m.config.ATTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.ATTimeout)
		defer cancel()
	}

	m.reader.ctx = ctx
	defer func() { m.reader.ctx = nil }()

	wire := strings.TrimSpace(cmd) + "\r"
	if _, err := m.transport.Write([]byte(wire)); err != nil {
		return "", fmt.Errorf("write command %q: %w", cmd, err)
	}

	var lines []string
	for {
		select {
		case <-ctx.Done():
			return strings.Join(lines, "\n"), ctx.Err()
		default:
		}

		if !m.scanner.Scan() {
			if err := m.scanner.Err(); err != nil {
				return strings.Join(lines, "\n"), fmt.Errorf("read response: %w", err)
			}
			return strings.Join(lines, "\n"), io.EOF
		}

		line := strings.TrimSpace(m.scanner.Text())
		if line == "" {
			continue
		}
		// Command echo, in case ATE0 has not taken effect yet.
		if line == strings.TrimSpace(cmd) {
			continue
		}

		lines = append(lines, line)
		if at.IsFinal(line) {
			response := strings.Join(lines, "\n")
			if line != at.OK {
				return response, fmt.Errorf("%w: %s", ErrCommandFailed, line)
			}
			return response, nil
		}
	}
}

// Raw sends an arbitrary AT command and returns the raw response text.
func (m *Modem) Raw(ctx context.Context, cmd string) (string, error) {
	return m.exec(ctx, cmd)
}

// DeviceInfo queries the device identification (ATI).
func (m *Modem) DeviceInfo(ctx context.Context) (*DeviceInfo, error) {
	response, err := m.exec(ctx, at.CmdDeviceInfo)
	if err != nil {
		return nil, err
	}
	return DecodeDeviceInfo(response), nil
}

// NetworkInfo queries the registered operator (AT+QSPN).
func (m *Modem) NetworkInfo(ctx context.Context) (*NetworkInfo, error) {
	response, err := m.exec(ctx, at.CmdOperatorName)
	if err != nil {
		return nil, err
	}
	return DecodeNetworkInfo(response), nil
}

// ServingCell queries the LTE and NR serving cells. Either result may be
// nil when the modem is not camped on that technology.
func (m *Modem) ServingCell(ctx context.Context) (*LteServingCell, *Nr5gServingCell, error) {
	response, err := m.exec(ctx, at.CmdServingCell)
	if err != nil {
		return nil, nil, err
	}
	lte, nr := DecodeServingCell(response)
	return lte, nr, nil
}

// CarrierInfo queries the carrier aggregation components (AT+QCAINFO).
func (m *Modem) CarrierInfo(ctx context.Context) ([]CarrierComponent, error) {
	response, err := m.exec(ctx, at.CmdCarrierInfo)
	if err != nil {
		return nil, err
	}
	return DecodeCarrierInfo(response), nil
}

// NeighbourCells queries the neighbour cell list.
func (m *Modem) NeighbourCells(ctx context.Context) ([]NeighbourCell, error) {
	response, err := m.exec(ctx, at.CmdNeighbourCell)
	if err != nil {
		return nil, err
	}
	return DecodeNeighbourCells(response), nil
}

// BandConfig queries the mode preference and the configured LTE and NR
// band lists, merged into a single preference map.
func (m *Modem) BandConfig(ctx context.Context) (PrefConfig, error) {
	config := PrefConfig{}
	for _, key := range []string{at.PrefModePreference, at.PrefLTEBands, at.PrefNSABands, at.PrefSABands} {
		response, err := m.exec(ctx, fmt.Sprintf(`%s="%s"`, at.CmdPrefConfig, key))
		if err != nil {
			return nil, err
		}
		for k, v := range DecodePrefConfig(response) {
			config[k] = v
		}
	}
	return config, nil
}

// SetLTEBands restricts the modem to the given LTE bands.
func (m *Modem) SetLTEBands(ctx context.Context, bands []int) error {
	return m.setBands(ctx, at.PrefLTEBands, bands)
}

// SetNRBands restricts the modem to the given NR NSA bands.
func (m *Modem) SetNRBands(ctx context.Context, bands []int) error {
	return m.setBands(ctx, at.PrefNSABands, bands)
}

func (m *Modem) setBands(ctx context.Context, key string, bands []int) error {
	if len(bands) == 0 {
		return fmt.Errorf("no bands given for %s", key)
	}
	list := make([]string, len(bands))
	for i, band := range bands {
		list[i] = strconv.Itoa(band)
	}
	cmd := fmt.Sprintf(`%s="%s",%s`, at.CmdPrefConfig, key, strings.Join(list, ":"))
	_, err := m.exec(ctx, cmd)
	return err
}
