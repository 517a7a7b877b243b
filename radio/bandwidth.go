package radio

import "fmt"

// LTE bandwidth reporting uses two encodings: +QENG carries an index 0-5,
// +QCAINFO carries the resource block count.
var lteBandwidthByIndex = map[int]string{
	0: "1.4 MHz",
	1: "3 MHz",
	2: "5 MHz",
	3: "10 MHz",
	4: "15 MHz",
	5: "20 MHz",
}

var lteBandwidthByRB = map[int]string{
	6:   "1.4 MHz",
	15:  "3 MHz",
	25:  "5 MHz",
	50:  "10 MHz",
	75:  "15 MHz",
	100: "20 MHz",
}

// NR bandwidth index per the vendor manual. The staircase is uniform up to
// 100 MHz, then jumps to the FR2 widths.
var nrBandwidthByIndex = map[int]string{
	0:  "5 MHz",
	1:  "10 MHz",
	2:  "15 MHz",
	3:  "20 MHz",
	4:  "25 MHz",
	5:  "30 MHz",
	6:  "40 MHz",
	7:  "50 MHz",
	8:  "60 MHz",
	9:  "70 MHz",
	10: "80 MHz",
	11: "90 MHz",
	12: "100 MHz",
	13: "200 MHz",
	14: "400 MHz",
}

// FormatLTEBandwidth expands an LTE bandwidth code into a label. fromRB
// selects the resource-block-count encoding used by +QCAINFO. Unknown codes
// yield a tagged placeholder, never an error.
func FormatLTEBandwidth(code int, fromRB bool) string {
	if fromRB {
		if label, ok := lteBandwidthByRB[code]; ok {
			return label
		}
		return fmt.Sprintf("? (%d RB)", code)
	}
	if label, ok := lteBandwidthByIndex[code]; ok {
		return label
	}
	return fmt.Sprintf("? (idx %d)", code)
}

// FormatNRBandwidth expands an NR bandwidth index into a label.
func FormatNRBandwidth(code int) string {
	if label, ok := nrBandwidthByIndex[code]; ok {
		return label
	}
	return fmt.Sprintf("? (idx %d)", code)
}
