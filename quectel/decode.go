package quectel

import (
	"strconv"
	"strings"

	"github.com/vjt/quectel-5g-tools/at"
)

// The decoders in this file share one policy: a malformed or short line is
// skipped and decoding continues with whatever accumulated so far. They
// never return an error; an unusable response yields nil or empty results.

// parseInt returns nil for empty, "-" placeholder and unparsable values.
func parseInt(val string) *int {
	if val == "" || val == "-" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloat(val string) *float64 {
	if val == "" || val == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseHex decodes a base-16 field such as the cell identity or tracking
// area code. Unparsable values decode to 0 rather than failing the record.
func parseHex(val string) int {
	if val == "" || val == "-" {
		return 0
	}
	n, err := strconv.ParseInt(val, 16, 64)
	if err != nil {
		return 0
	}
	return int(n)
}

func intOrZero(val string) int {
	if n := parseInt(val); n != nil {
		return *n
	}
	return 0
}

func floatOrZero(val string) float64 {
	if f := parseFloat(val); f != nil {
		return *f
	}
	return 0
}

// DecodeDeviceInfo decodes an ATI response. ATI does not follow the report
// format: it returns plain lines, manufacturer first, model second, and a
// "Revision: ..." line somewhere after. Returns nil when fewer than three
// usable lines are present.
func DecodeDeviceInfo(response string) *DeviceInfo {
	lines := at.Lines(response)
	if len(lines) < 3 {
		return nil
	}

	info := &DeviceInfo{
		Manufacturer: lines[0],
		Model:        lines[1],
	}
	for _, line := range lines[2:] {
		if strings.HasPrefix(line, "Revision:") {
			info.Revision = strings.TrimSpace(strings.TrimPrefix(line, "Revision:"))
			break
		}
	}
	return info
}

// DecodeNetworkInfo decodes an AT+QSPN response, e.g.
//
//	+QSPN: "I TIM","TIM","",0,"22201"
//
// The combined digit string splits into a 3-digit MCC and the remainder MNC.
func DecodeNetworkInfo(response string) *NetworkInfo {
	for _, values := range at.Records(response, at.ReportOperatorName) {
		if len(values) < 5 {
			continue
		}

		info := &NetworkInfo{
			FullName:  values[0],
			ShortName: values[1],
		}
		if mccMNC := values[4]; len(mccMNC) >= 5 {
			info.MCC = intOrZero(mccMNC[:3])
			info.MNC = intOrZero(mccMNC[3:])
		}
		return info
	}
	return nil
}

// DecodeServingCell decodes an AT+QENG="servingcell" response. The response
// may carry an LTE line, an NR5G-NSA anchor line, both or neither:
//
//	+QENG: "servingcell","NOCONN"
//	+QENG: "LTE","FDD",222,01,328261F,280,275,1,4,4,BE3,-99,-14,-66,7,4,30,-
//	+QENG: "NR5G-NSA",222,01,920,-96,18,-10,648768,78,10,1
func DecodeServingCell(response string) (*LteServingCell, *Nr5gServingCell) {
	var (
		lte *LteServingCell
		nr  *Nr5gServingCell
	)

	for _, values := range at.Records(response, at.ReportEngineering) {
		if len(values) < 2 {
			continue
		}

		switch {
		case values[0] == "LTE" && len(values) >= 17:
			if cell := decodeLteServingCell(values); cell != nil {
				lte = cell
			}
		case strings.Contains(values[0], "NR5G-NSA") && len(values) >= 10:
			if cell := decodeNrServingCell(values); cell != nil {
				nr = cell
			}
		}
	}

	return lte, nr
}

func decodeLteServingCell(values []string) *LteServingCell {
	mcc, err := strconv.Atoi(values[2])
	if err != nil {
		return nil
	}
	mnc, err := strconv.Atoi(values[3])
	if err != nil {
		return nil
	}
	pci, err := strconv.Atoi(values[5])
	if err != nil {
		return nil
	}
	earfcn, err := strconv.Atoi(values[6])
	if err != nil {
		return nil
	}
	band, err := strconv.Atoi(values[7])
	if err != nil {
		return nil
	}

	var txPower *float64
	if raw := parseFloat(values[16]); raw != nil {
		// The wire value is tenths of dBm.
		p := *raw / 10.0
		txPower = &p
	}

	return &LteServingCell{
		Mode:        values[1],
		MCC:         mcc,
		MNC:         mnc,
		CellID:      parseHex(values[4]),
		PCI:         pci,
		EARFCN:      earfcn,
		Band:        band,
		ULBandwidth: intOrZero(values[8]),
		DLBandwidth: intOrZero(values[9]),
		TAC:         parseHex(values[10]),
		RSRP:        intOrZero(values[11]),
		RSRQ:        intOrZero(values[12]),
		RSSI:        intOrZero(values[13]),
		SINR:        floatOrZero(values[14]),
		CQI:         parseInt(values[15]),
		TxPower:     txPower,
	}
}

func decodeNrServingCell(values []string) *Nr5gServingCell {
	fields := make([]int, 0, 8)
	for _, i := range []int{1, 2, 3, 4, 6, 7, 8, 9} {
		n, err := strconv.Atoi(values[i])
		if err != nil {
			return nil
		}
		fields = append(fields, n)
	}
	sinr, err := strconv.ParseFloat(values[5], 64)
	if err != nil {
		return nil
	}

	return &Nr5gServingCell{
		MCC:       fields[0],
		MNC:       fields[1],
		PCI:       fields[2],
		RSRP:      fields[3],
		SINR:      sinr,
		RSRQ:      fields[4],
		ARFCN:     fields[5],
		Band:      fields[6],
		Bandwidth: fields[7],
	}
}

// Primary cell states per the vendor manual. Secondary cells use a
// different, smaller enumeration; the two must not be conflated.
var pccStates = map[string]string{
	"0": "Idle",
	"1": "Registered",
	"2": "Searching",
	"3": "Denied",
	"4": "Unknown",
	"5": "Roaming",
}

var sccStates = map[string]string{
	"0": "Deconfigured",
	"1": "Inactive",
	"2": "Active",
}

func decodeState(table map[string]string, code string) *string {
	state, ok := table[code]
	if !ok {
		state = "N/A"
	}
	return &state
}

// DecodeCarrierInfo decodes an AT+QCAINFO response into carrier aggregation
// components. The token count selects the field layout of a line; the same
// position carries different fields across secondary cell variants:
//
//	PCC,channel,rb,band,state,pci,rsrp,rsrq,rssi,sinr
//	SCC,channel,bwidx,band,pci                                    (NR, 5)
//	SCC,channel,rb,band,state,pci,ulcfg,ulband,ulchannel          (9)
//	SCC,channel,rb,band,state,pci,ulcfg,ulband,ulchannel,
//	    rsrp,rsrq,sinr                                            (12)
//	SCC,channel,rb,band,state,pci,rsrp,rsrq,rssi,sinr,
//	    ulcfg,ulband,ulchannel                                    (>=13)
//
// Lines with fewer than five tokens are skipped; secondary lines with ten
// or eleven tokens decode the common head fields only.
func DecodeCarrierInfo(response string) []CarrierComponent {
	var components []CarrierComponent

	for _, values := range at.Records(response, at.ReportCarrierInfo) {
		if len(values) < 5 {
			continue
		}

		component := CarrierComponent{
			Type:         CarrierType(values[0]),
			Channel:      intOrZero(values[1]),
			BandwidthRaw: intOrZero(values[2]),
			BandName:     values[3],
		}

		if component.Type == PrimaryCarrier {
			if len(values) >= 10 {
				component.State = decodeState(pccStates, values[4])
				component.PCI = intOrZero(values[5])
				component.RSRP = parseInt(values[6])
				component.RSRQ = parseInt(values[7])
				component.SINR = parseFloat(values[9])
			}
		} else {
			switch {
			case len(values) == 5:
				// NR secondary: the fifth token is the PCI.
				component.PCI = intOrZero(values[4])
			case len(values) == 9:
				component.State = decodeState(sccStates, values[4])
				component.PCI = intOrZero(values[5])
				component.ULConfigured = parseInt(values[6])
				component.ULBand = optString(values[7])
				component.ULChannel = parseInt(values[8])
			case len(values) == 12:
				component.State = decodeState(sccStates, values[4])
				component.PCI = intOrZero(values[5])
				component.ULConfigured = parseInt(values[6])
				component.ULBand = optString(values[7])
				component.ULChannel = parseInt(values[8])
				component.RSRP = parseInt(values[9])
				component.RSRQ = parseInt(values[10])
				component.SINR = parseFloat(values[11])
			case len(values) >= 13:
				component.State = decodeState(sccStates, values[4])
				component.PCI = intOrZero(values[5])
				component.RSRP = parseInt(values[6])
				component.RSRQ = parseInt(values[7])
				component.SINR = parseFloat(values[9])
				component.ULConfigured = parseInt(values[10])
				component.ULBand = optString(values[11])
				component.ULChannel = parseInt(values[12])
			}
		}

		components = append(components, component)
	}

	return components
}

func optString(val string) *string {
	if val == "" || val == "-" {
		return nil
	}
	return &val
}

// DecodeNeighbourCells decodes an AT+QENG="neighbourcell" response:
//
//	+QENG: "neighbourcell intra","LTE",275,280,-14,-99,-67,-,-,-,-,-,-
//	+QENG: "neighbourcell inter","LTE",1350,240,-18,-95,-68,-,-,-,-,-
//
// Only LTE neighbours are reported in a usable shape; other technologies
// are skipped.
func DecodeNeighbourCells(response string) []NeighbourCell {
	var cells []NeighbourCell

	for _, values := range at.Records(response, at.ReportEngineering) {
		if len(values) < 6 {
			continue
		}
		if !strings.Contains(values[0], "neighbourcell") {
			continue
		}

		var locality NeighbourLocality
		switch {
		case strings.Contains(values[0], "intra"):
			locality = IntraFrequency
		case strings.Contains(values[0], "inter"):
			locality = InterFrequency
		default:
			continue
		}

		if values[1] != "LTE" {
			continue
		}
		earfcn, err := strconv.Atoi(values[2])
		if err != nil {
			continue
		}
		pci, err := strconv.Atoi(values[3])
		if err != nil {
			continue
		}

		cell := NeighbourCell{
			Locality:   locality,
			Technology: values[1],
			EARFCN:     earfcn,
			PCI:        pci,
			RSRQ:       intOrZero(values[4]),
			RSRP:       intOrZero(values[5]),
		}
		if len(values) > 6 {
			cell.RSSI = intOrZero(values[6])
		}
		cells = append(cells, cell)
	}

	return cells
}

// DecodePrefConfig decodes AT+QNWPREFCFG responses into a key/value map:
//
//	+QNWPREFCFG: "mode_pref",AUTO
//	+QNWPREFCFG: "lte_band",1:3:7:20
//
// Later lines overwrite earlier ones for the same key. Decoding several
// responses into one map is done by merging the results.
func DecodePrefConfig(response string) PrefConfig {
	config := PrefConfig{}
	for _, values := range at.Records(response, at.ReportPrefConfig) {
		if len(values) >= 2 {
			config[values[0]] = values[1]
		}
	}
	return config
}
