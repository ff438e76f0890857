package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockRe = regexp.MustCompile(`^(\d{1,2})(?:[:.](\d{2}))?$`)

// ParseClock normalizes a checkout-time string as typed by the host into
// canonical "HH:MM". Accepted inputs: "9", "9:30", "09:30", "9.30". An empty
// string is passed through (the field is optional).
func ParseClock(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}

	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("unable to parse checkout time: %q", raw)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return "", fmt.Errorf("invalid hour in checkout time: %q", raw)
	}

	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return "", fmt.Errorf("invalid minutes in checkout time: %q", raw)
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
