package at

const (
	// Terminal Control
	CRLF = "\r\n"

	// Response Codes
	OK       = "OK"
	ERROR    = "ERROR"
	CmeError = "+CME ERROR:"
	CmsError = "+CMS ERROR:"

	// Commands
	CmdAt            = "AT"
	CmdDeviceInfo    = "ATI"
	CmdOperatorName  = "AT+QSPN"
	CmdServingCell   = `AT+QENG="servingcell"`
	CmdCarrierInfo   = "AT+QCAINFO"
	CmdNeighbourCell = `AT+QENG="neighbourcell"`
	CmdPrefConfig    = "AT+QNWPREFCFG"

	// Report prefixes (the "+TAG" part of "+TAG: v1,v2,...")
	ReportOperatorName = "+QSPN"
	ReportEngineering  = "+QENG"
	ReportCarrierInfo  = "+QCAINFO"
	ReportPrefConfig   = "+QNWPREFCFG"
)

// Preference keys accepted by AT+QNWPREFCFG.
const (
	PrefModePreference = "mode_pref"
	PrefLTEBands       = "lte_band"
	PrefNSABands       = "nsa_nr5g_band"
	PrefSABands        = "nr5g_band"
)
