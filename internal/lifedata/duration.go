package lifedata

import (
	"regexp"
	"strconv"
)

// DefaultStayMinutes is assumed for a visit without a duration when another
// visit follows it.
const DefaultStayMinutes = 60

var (
	hourPattern   = regexp.MustCompile(`(\d+)\s*hour`)
	minutePattern = regexp.MustCompile(`(\d+)\s*minute`)
)

// Stay is a parsed visit duration. Unknown is set when no duration text was
// recorded at all; text that matches neither pattern is a known zero.
type Stay struct {
	Minutes int
	Unknown bool
}

// ParseStay reads the first hour count and the first minute count from a
// free-text duration. Only whole numbers are recognised, so "1.5 hours"
// reads as 5 hours.
func ParseStay(text string) Stay {
	if text == "" {
		return Stay{Unknown: true}
	}

	var minutes int
	if m := hourPattern.FindStringSubmatch(text); m != nil {
		minutes += atoi(m[1]) * 60
	}
	if m := minutePattern.FindStringSubmatch(text); m != nil {
		minutes += atoi(m[1])
	}
	return Stay{Minutes: minutes}
}

// MinutesOr returns the parsed minutes, or fallback when the stay is unknown.
func (s Stay) MinutesOr(fallback int) int {
	if s.Unknown {
		return fallback
	}
	return s.Minutes
}

// StayMinutes returns the minutes spent at each visit. A visit without a
// duration counts DefaultStayMinutes unless it is the last one of the day.
func StayMinutes(locations []LocationVisit) []int {
	out := make([]int, len(locations))
	for i, loc := range locations {
		fallback := 0
		if i < len(locations)-1 {
			fallback = DefaultStayMinutes
		}
		out[i] = ParseStay(loc.Duration).MinutesOr(fallback)
	}
	return out
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
