// Package radio converts 3GPP channel numbers to frequencies and bands,
// expands vendor bandwidth codes, and classifies signal quality readings.
package radio

import "fmt"

// lteBand maps a contiguous downlink EARFCN range to its band. Frequency
// within the range is lowMHz + 0.1 * (earfcn - offset).
type lteBand struct {
	band   int
	start  int
	end    int
	lowMHz float64
	offset int
}

// Downlink EARFCN allocation per 3GPP TS 36.101. Ranges do not overlap;
// rows are scanned in order and the first match wins.
var lteBands = []lteBand{
	{1, 0, 599, 2110.0, 0},
	{2, 600, 1199, 1930.0, 600},
	{3, 1200, 1949, 1805.0, 1200},
	{4, 1950, 2399, 2110.0, 1950},
	{5, 2400, 2649, 869.0, 2400},
	{7, 2750, 3449, 2620.0, 2750},
	{8, 3450, 3799, 925.0, 3450},
	{12, 5010, 5179, 729.0, 5010},
	{13, 5180, 5279, 746.0, 5180},
	{14, 5280, 5379, 758.0, 5280},
	{17, 5730, 5849, 734.0, 5730},
	{18, 5850, 5999, 860.0, 5850},
	{19, 6000, 6149, 875.0, 6000},
	{20, 6150, 6449, 791.0, 6150},
	{25, 8040, 8689, 1930.0, 8040},
	{26, 8690, 9039, 859.0, 8690},
	{28, 9210, 9659, 758.0, 9210},
	{29, 9660, 9769, 717.0, 9660},
	{30, 9770, 9869, 2350.0, 9770},
	{32, 9920, 10359, 1452.0, 9920},
	{34, 36200, 36349, 2010.0, 36200},
	{38, 37750, 38249, 2570.0, 37750},
	{39, 38250, 38649, 1880.0, 38250},
	{40, 38650, 39649, 2300.0, 38650},
	{41, 39650, 41589, 2496.0, 39650},
	{42, 41590, 43589, 3400.0, 41590},
	{43, 43590, 45589, 3600.0, 43590},
	{46, 46790, 54539, 5150.0, 46790},
	{48, 55240, 56739, 3550.0, 55240},
	{66, 66436, 67335, 2110.0, 66436},
	{71, 68586, 68935, 617.0, 68586},
}

// nrBand maps a downlink NR-ARFCN range to its band. NR band allocations
// legitimately share spectrum, so ranges overlap; narrower allocations are
// listed before the broader ones that contain them (n78 before n77, n1
// before n66, n2 before n25, n38 before n41, n20 before n28, n261 before
// n257) and the first match wins. Reordering rows changes which band an
// overlapping channel resolves to.
type nrBand struct {
	band   int
	start  int
	end    int
	mmWave bool
}

var nrBands = []nrBand{
	{78, 620000, 653333, false},
	{77, 620000, 680000, false},
	{79, 693334, 733333, false},
	{1, 422000, 434000, false},
	{66, 422000, 440000, false},
	{2, 386000, 398000, false},
	{25, 386000, 399000, false},
	{3, 361000, 376000, false},
	{5, 173800, 178800, false},
	{7, 524000, 538000, false},
	{38, 514000, 524000, false},
	{41, 499200, 537999, false},
	{8, 185000, 192000, false},
	{12, 145800, 149200, false},
	{71, 123400, 130400, false},
	{20, 158200, 164200, false},
	{28, 151600, 160600, false},
	{40, 460000, 480000, false},
	{261, 2070833, 2084999, true},
	{258, 2016667, 2070832, true},
	{257, 2054166, 2104165, true},
	{260, 2229166, 2279165, true},
}

// EARFCNToMHz converts an LTE downlink EARFCN to its carrier frequency and
// band number. The third return is false when the channel number lies
// outside every known band.
func EARFCNToMHz(earfcn int) (float64, int, bool) {
	for _, b := range lteBands {
		if earfcn >= b.start && earfcn <= b.end {
			return b.lowMHz + 0.1*float64(earfcn-b.offset), b.band, true
		}
	}
	return 0, 0, false
}

// Global frequency raster domain boundaries per 3GPP TS 38.104. The raster
// step is 5 kHz up to ARFCN 600000, 15 kHz up to 2016666 (referenced at
// 3000 MHz) and 60 kHz above (referenced at 24250.08 MHz).
const (
	rasterMidStart  = 600000
	rasterHighStart = 2016667
	rasterMidRefMHz = 3000.0
	rasterHighRef   = 24250.08
)

// NRARFCNToMHz converts an NR-ARFCN to its carrier frequency and band
// number. The third return is false when the channel number lies outside
// every known band.
func NRARFCNToMHz(arfcn int) (float64, int, bool) {
	for _, b := range nrBands {
		if arfcn >= b.start && arfcn <= b.end {
			return nrGlobalRaster(arfcn), b.band, true
		}
	}
	return 0, 0, false
}

// IsMMWave reports whether the NR-ARFCN falls in a millimeter-wave (FR2)
// band allocation.
func IsMMWave(arfcn int) bool {
	for _, b := range nrBands {
		if arfcn >= b.start && arfcn <= b.end {
			return b.mmWave
		}
	}
	return false
}

func nrGlobalRaster(arfcn int) float64 {
	switch {
	case arfcn >= rasterHighStart:
		return rasterHighRef + 0.06*float64(arfcn-rasterHighStart)
	case arfcn >= rasterMidStart:
		return rasterMidRefMHz + 0.015*float64(arfcn-rasterMidStart)
	default:
		return 0.005 * float64(arfcn)
	}
}

// FormatFrequency renders a channel number as a human readable frequency,
// e.g. "1820.0 MHz (B3)" or "3731.5 MHz (N78)". Channel numbers outside
// every known band render as "Unknown (<channel>)".
func FormatFrequency(channel int, is5G bool) string {
	var (
		freq   float64
		band   int
		ok     bool
		prefix string
	)
	if is5G {
		freq, band, ok = NRARFCNToMHz(channel)
		prefix = "N"
	} else {
		freq, band, ok = EARFCNToMHz(channel)
		prefix = "B"
	}
	if !ok {
		return fmt.Sprintf("Unknown (%d)", channel)
	}
	return fmt.Sprintf("%.1f MHz (%s%d)", freq, prefix, band)
}
