package kitchensage

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockTimeRe = regexp.MustCompile(`^(\d+):([0-5]\d)$`)
	timePartRe  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(hours?|hrs?|h|minutes?|mins?|m)\b`)
)

// ParseCookingTime parses the free-text durations found in recipe exports,
// such as "45 mins", "1 hr 30 mins", "1h30m", "1:30" or a bare number of
// minutes. It returns false when no duration can be recognized.
func ParseCookingTime(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return time.Duration(n) * time.Minute, true
	}

	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d, true
	}

	if m := clockTimeRe.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, true
	}

	matches := timePartRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0, false
	}

	var total time.Duration
	for _, m := range matches {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		unit := time.Minute
		if strings.HasPrefix(strings.ToLower(m[2]), "h") {
			unit = time.Hour
		}
		total += time.Duration(value * float64(unit))
	}
	return total, true
}
