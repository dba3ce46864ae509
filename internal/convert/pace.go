package convert

import (
	"fmt"
	"regexp"
	"strconv"
)

var paceRe = regexp.MustCompile(`(\d+):(\d+)\s*/?k(?:m)?`)

// ParsePace extracts a per-kilometer pace from text ("1km at 4:50/km")
// as seconds per kilometer. Returns 0 when no pace token is present.
func ParsePace(text string) float64 {
	m := paceRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])
	return float64(minutes*60 + seconds)
}

// FormatPace renders seconds-per-kilometer as M:SS.
func FormatPace(seconds float64) string {
	m := int(seconds) / 60
	s := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// PaceZone is an inclusive pace band in seconds per kilometer. Min is the
// faster bound.
type PaceZone struct {
	Min float64
	Max float64
}

// RecoveryZone derives the slow recovery band from a base pace: one to
// two-and-a-half minutes per kilometer slower.
func RecoveryZone(pace float64) PaceZone {
	return PaceZone{Min: pace + 60, Max: pace + 150}
}

// EasyZone derives the easy-to-moderate band from a base pace: at most
// thirty seconds (or 10%) faster, up to two-and-a-half minutes slower.
func EasyZone(pace float64) PaceZone {
	min := pace - 30
	if floor := pace * 0.9; min < floor {
		min = floor
	}
	return PaceZone{Min: min, Max: pace + 150}
}
