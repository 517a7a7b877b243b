package quectel

import "time"

// Config configures a Modem.
type Config struct {
	// Dialer opens the transport to the modem. Required.
	Dialer Dialer
	// ATTimeout is the default deadline for a single command exchange.
	ATTimeout time.Duration
	// SkipInit disables the AT sanity check and echo-off sequence during
	// construction. Useful when the port is shared with another consumer
	// that already configured it.
	SkipInit bool
}

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.ATTimeout == 0 {
		c.ATTimeout = 5 * time.Second
	}
}
