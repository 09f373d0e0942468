package cylinder

import (
	"regexp"
	"strconv"
)

const (
	SerialPrefix = "CYL"
	FirstSerial  = 1001
)

var serialPattern = regexp.MustCompile(`^CYL[0-9]+$`)

func ValidSerial(s string) bool {
	return serialPattern.MatchString(s)
}

// SerialNumber returns the numeric suffix of a CYL<N> serial.
func SerialNumber(s string) (int64, bool) {
	if !ValidSerial(s) {
		return 0, false
	}

	n, err := strconv.ParseInt(s[len(SerialPrefix):], 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

func FormatSerial(n int64) string {
	return SerialPrefix + strconv.FormatInt(n, 10)
}

// NextSerial returns the serial following highest, the largest suffix seen across
// active and archived cylinders. found is false when no serial matched.
func NextSerial(highest int64, found bool) string {
	if !found {
		return FormatSerial(FirstSerial)
	}

	return FormatSerial(highest + 1)
}
