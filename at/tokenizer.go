package at

import (
	"bufio"
	"bytes"
	"strings"
)

// Splitter is used for tokenizing AT command modem responses. It uses
// the signature of bufio.SplitFunc so it can be directly used with
// bufio.Scanner.
//
// It splits the input by CRLF line endings and also accepts bare CR,
// which the gl_modem helper tool emits instead of full line endings.
//
// Important: This splitter assumes "No Echo" mode (ATE0). If echo is enabled,
// it would need modification to handle command echoes that precede the actual
// response.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, '\r'); i >= 0 {
		advance = i + 1
		if advance < len(data) && data[advance] == '\n' {
			advance++
		}
		return advance, data[0:i], nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[0:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter

// IsFinal reports whether the line terminates a command response.
func IsFinal(line string) bool {
	switch line {
	case OK, ERROR:
		return true
	}
	return strings.HasPrefix(line, CmeError) || strings.HasPrefix(line, CmsError)
}

// Records extracts the value lists from every report line of a response.
//
// A report line has the form "+TAG: v1,v2,..." where TAG is the given
// prefix. For each such line the comma-separated values are returned with
// surrounding whitespace and one layer of double quotes stripped. Blank
// lines, OK/ERROR terminators and lines carrying a different prefix are
// skipped; no line is ever an error. The vendor format never embeds commas
// inside quoted values, so a plain comma split is sufficient.
func Records(text, prefix string) [][]string {
	var records [][]string

	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" || line == OK || line == ERROR {
			continue
		}
		if !strings.HasPrefix(line, prefix+":") {
			continue
		}

		content := strings.TrimSpace(line[len(prefix)+1:])
		values := strings.Split(content, ",")
		for i, val := range values {
			val = strings.TrimSpace(val)
			if len(val) >= 2 && strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
				val = val[1 : len(val)-1]
			}
			values[i] = val
		}
		records = append(records, values)
	}

	return records
}

// Lines returns the trimmed, non-empty lines of a response, with OK/ERROR
// terminators removed. Used for positional responses such as ATI that do
// not follow the "+TAG:" report format.
func Lines(text string) []string {
	var lines []string
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" || line == OK || line == ERROR {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitLines tolerates CRLF, bare LF and bare CR line endings.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, CRLF, "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
