package convert

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultDuration is assumed when text carries no recognizable duration
// token: an unspecified session reads as a typical 30-minute effort.
const DefaultDuration = 1800

const metersPerMile = 1609.34

var (
	hoursRe   = regexp.MustCompile(`(\d+)\s*h(?:our)?s?`)
	minutesRe = regexp.MustCompile(`(\d+)\s*m(?:in)?(?:ute)?s?`)
	secondsRe = regexp.MustCompile(`(\d+)\s*s(?:ec)?(?:ond)?s?`)

	kmRe    = regexp.MustCompile(`(\d+\.?\d*)\s*k(?:m)?`)
	mileRe  = regexp.MustCompile(`(\d+\.?\d*)\s*mi(?:le)?s?`)
	meterRe = regexp.MustCompile(`(\d+)\s*m(?:eter)?s?`)
)

// ParseDuration converts duration text ("30min", "1h 15min", "45 minutes")
// to seconds. Hour, minute and second tokens are searched independently and
// summed; each may appear at most once. Text with no token at all yields
// DefaultDuration rather than zero, so downstream assembly stays total.
func ParseDuration(text string) int {
	text = strings.ToLower(strings.TrimSpace(text))
	total := 0

	if m := hoursRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n * 3600
	}
	if m := minutesRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n * 60
	}
	if m := secondsRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n
	}

	if total == 0 {
		return DefaultDuration
	}
	return total
}

// ParseDistance converts distance text ("5km", "10k", "400m", "1mi") to
// meters. Kilometer and mile tokens are tried before the plain meter token
// so the bare-m pattern never fires on a km suffix; the first match wins
// and extraction stops. Text with no token yields 0.
func ParseDistance(text string) float64 {
	text = strings.ToLower(strings.TrimSpace(text))

	if m := kmRe.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v * 1000
	}
	if m := mileRe.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v * metersPerMile
	}
	if m := meterRe.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v
	}
	return 0
}
