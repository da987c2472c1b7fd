package download

import (
	"bytes"
	"regexp"
	"strconv"
)

// percentPattern matches "45.7%": 1-3 digits, a dot, one digit, a percent sign
var percentPattern = regexp.MustCompile(`(\d{1,3}\.\d)%`)

// ParseProgress extracts the first percentage on a line, truncated toward
// zero and clamped to 0..100.
func ParseProgress(line string) (int, bool) {
	m := percentPattern.FindStringSubmatch(line)
	if len(m) < 2 {
		return 0, false
	}
	p, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return min(int(p), 100), true
}

// ScanLinesOrCR is a bufio.SplitFunc that ends a line at '\n' or '\r'.
// yt-dlp redraws its progress line with carriage returns.
func ScanLinesOrCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
