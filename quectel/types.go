// Package quectel decodes Quectel AT command responses into typed records
// and drives a modem over a byte-stream transport.
package quectel

import (
	"fmt"
	"strconv"
	"strings"
)

// DeviceInfo is the device identification returned by ATI.
type DeviceInfo struct {
	Manufacturer string
	Model        string
	Revision     string
}

// NetworkInfo is the registered operator returned by AT+QSPN.
type NetworkInfo struct {
	FullName  string
	ShortName string
	MCC       int
	MNC       int
}

// MCCMNC renders the PLMN identity with the network code zero-padded.
func (n NetworkInfo) MCCMNC() string {
	return fmt.Sprintf("%d-%02d", n.MCC, n.MNC)
}

// LteServingCell is the LTE line of AT+QENG="servingcell".
type LteServingCell struct {
	// Mode is the duplexing mode, FDD or TDD
	Mode string
	MCC  int
	MNC  int
	// CellID is the 28-bit E-UTRAN cell identity, reported as hex text
	CellID int
	// PCI is the physical cell id
	PCI int
	// EARFCN is the downlink channel number
	EARFCN int
	// Band is the frequency band indicator
	Band int
	// ULBandwidth and DLBandwidth are index codes 0-5
	ULBandwidth int
	DLBandwidth int
	// TAC is the tracking area code, reported as hex text
	TAC int
	// RSRP in dBm
	RSRP int
	// RSRQ in dB
	RSRQ int
	// RSSI in dBm
	RSSI int
	// SINR in dB
	SINR float64
	// CQI is the channel quality indicator, when reported
	CQI *int
	// TxPower in dBm (the wire value is tenths of dBm)
	TxPower *float64
}

// ENodeBID extracts the base station identifier from the cell identity.
func (c LteServingCell) ENodeBID() int {
	return c.CellID >> 8
}

// SectorID extracts the sector from the cell identity (lower 8 bits).
func (c LteServingCell) SectorID() int {
	return c.CellID & 0xFF
}

// Nr5gServingCell is the NR5G-NSA anchor line of AT+QENG="servingcell".
type Nr5gServingCell struct {
	MCC  int
	MNC  int
	PCI  int
	RSRP int
	// SINR is carried as the modem reports it. Some firmware revisions
	// document this field as a coded index instead of a plain dB value;
	// the value is passed through untouched either way.
	SINR float64
	RSRQ int
	// ARFCN is the downlink NR channel number
	ARFCN int
	Band  int
	// Bandwidth is an index code 0-14
	Bandwidth int
}

// CarrierType discriminates carrier aggregation component roles.
type CarrierType string

const (
	PrimaryCarrier   CarrierType = "PCC"
	SecondaryCarrier CarrierType = "SCC"
)

// CarrierComponent is one line of AT+QCAINFO.
type CarrierComponent struct {
	Type    CarrierType
	Channel int
	// BandwidthRaw is a resource block count for LTE components and a
	// bandwidth index for NR components.
	BandwidthRaw int
	// BandName is the quoted label, e.g. "LTE BAND 3" or "NR5G BAND 78"
	BandName string
	// State is decoded from the role-specific state enumeration; nil when
	// the line variant does not carry one
	State *string
	PCI   int
	RSRP  *int
	RSRQ  *int
	SINR  *float64
	// Uplink configuration, present on some secondary cell variants
	ULConfigured *int
	ULBand       *string
	ULChannel    *int
}

// Is5G reports whether the component is an NR carrier.
func (c CarrierComponent) Is5G() bool {
	return strings.Contains(c.BandName, "NR5G")
}

// BandNumber extracts the band from the label text, e.g. 78 from
// "NR5G BAND 78". Returns 0 when the label does not end in a number.
func (c CarrierComponent) BandNumber() int {
	parts := strings.Fields(c.BandName)
	if len(parts) >= 3 {
		if band, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			return band
		}
	}
	return 0
}

// NeighbourLocality distinguishes same-frequency from cross-frequency
// neighbour cells.
type NeighbourLocality string

const (
	IntraFrequency NeighbourLocality = "intra"
	InterFrequency NeighbourLocality = "inter"
)

// NeighbourCell is one line of AT+QENG="neighbourcell".
type NeighbourCell struct {
	Locality   NeighbourLocality
	Technology string
	EARFCN     int
	PCI        int
	RSRQ       int
	RSRP       int
	RSSI       int
}

// PrefConfig is the key/value preference map built from AT+QNWPREFCFG
// responses. Values are raw strings, e.g. "AUTO" or "1:3:7:20".
type PrefConfig map[string]string
