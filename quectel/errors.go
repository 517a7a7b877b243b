package quectel

import "errors"

var (
	// ErrNoDialer is returned when a Modem is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the modem.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrAlreadyClosed is returned when an operation is attempted on a
	// Modem that has already been closed.
	ErrAlreadyClosed = errors.New("modem already closed")

	// ErrCommandFailed is returned when the modem terminates a response
	// with ERROR or a +CME/+CMS error line instead of OK.
	ErrCommandFailed = errors.New("command failed")

	// ErrNoModemFound is returned by AutoDetect when no candidate serial
	// port answers as a Quectel modem.
	ErrNoModemFound = errors.New("no modem found")
)
