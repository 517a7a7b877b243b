package radio

// Quality is a discrete signal quality level derived from a raw reading.
type Quality int

const (
	Unknown Quality = iota
	Poor
	Fair
	Good
	Excellent
)

func (q Quality) String() string {
	switch q {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Fair:
		return "fair"
	case Poor:
		return "poor"
	default:
		return "unknown"
	}
}

// Thresholds per the vendor's signal quality guidance. A reading qualifies
// for the first level it meets or exceeds; below the fair threshold it is
// poor. RSRP and RSRQ thresholds apply to LTE and NR alike.
const (
	rsrpExcellent = -80 // dBm
	rsrpGood      = -90
	rsrpFair      = -100

	rsrqExcellent = -10 // dB
	rsrqGood      = -12
	rsrqFair      = -15

	sinrExcellent = 20 // dB
	sinrGood      = 13
	sinrFair      = 0
)

// ClassifyRSRP grades a reference signal received power reading in dBm.
// A nil reading is Unknown.
func ClassifyRSRP(value *int) Quality {
	if value == nil {
		return Unknown
	}
	switch {
	case *value >= rsrpExcellent:
		return Excellent
	case *value >= rsrpGood:
		return Good
	case *value >= rsrpFair:
		return Fair
	default:
		return Poor
	}
}

// ClassifyRSRQ grades a reference signal received quality reading in dB.
func ClassifyRSRQ(value *int) Quality {
	if value == nil {
		return Unknown
	}
	switch {
	case *value >= rsrqExcellent:
		return Excellent
	case *value >= rsrqGood:
		return Good
	case *value >= rsrqFair:
		return Fair
	default:
		return Poor
	}
}

// ClassifySINR grades a signal-to-interference-plus-noise reading in dB.
// The thresholds are the same for LTE and NR; is5G is kept in the signature
// because the vendor documents the scales separately.
func ClassifySINR(value *float64, is5G bool) Quality {
	if value == nil {
		return Unknown
	}
	switch {
	case *value >= sinrExcellent:
		return Excellent
	case *value >= sinrGood:
		return Good
	case *value >= sinrFair:
		return Fair
	default:
		return Poor
	}
}

// BeepCount maps a 5G SINR reading to an audible alert count, 0 to 6.
//
// The 18 and 16 steps match exact values only: 18.5 drops to the >=17 step
// and yields 4, 16.5 drops to the >=14 step and yields 2. This mirrors the
// behavior the tool has always shipped with and is pinned by tests; do not
// turn these into range checks.
func BeepCount(sinr *float64) int {
	if sinr == nil {
		return 0
	}
	v := *sinr
	switch {
	case v >= 19:
		return 6
	case v == 18:
		return 5
	case v >= 17:
		return 4
	case v == 16:
		return 3
	case v >= 14:
		return 2
	case v >= 12:
		return 1
	default:
		return 0
	}
}
