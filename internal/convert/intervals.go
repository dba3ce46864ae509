package convert

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/runsync/internal/models"
)

var (
	// repeatBlockRe matches "5x(1km @ tempo, 2min recovery)". The inner
	// text runs to the first closing parenthesis, so only a single nesting
	// level matches. Deeper nesting falls through to the unstructured path.
	repeatBlockRe = regexp.MustCompile(`(?i)(\d+)\s*x\s*\(([^)]+)\)`)

	fragmentSplitRe = regexp.MustCompile(`,|and`)

	warmupRe   = regexp.MustCompile(`(?i)warm\s*up\s+(\d+(?:\s*min)?)`)
	cooldownRe = regexp.MustCompile(`(?i)cool\s*down\s+(\d+(?:\s*min)?)`)
)

// blockScan is the tagged outcome of the repeat-block scan: either at
// least one structured block was found, or the caller must synthesize.
type blockScan struct {
	intervals []models.Interval
	found     bool
}

// ExtractIntervals parses a workout description into an ordered interval
// sequence. Structured "Nx(...)" repeat blocks are used when present;
// otherwise a warmup/work/cooldown triplet is synthesized from anchors in
// the text and the event title. The fallback path never returns an empty
// slice, and repeated runs on identical input yield identical output.
func (c *Converter) ExtractIntervals(description, title string) []models.Interval {
	// Flatten to one line so block patterns match across line breaks.
	text := strings.Join(strings.Split(description, "\n"), " ")

	scan := c.scanRepeatBlocks(text)
	if scan.found {
		return scan.intervals
	}
	return c.synthesize(text, title)
}

// scanRepeatBlocks collects every repeat block in text order. Blocks with
// a repeat count below one are treated as not found.
func (c *Converter) scanRepeatBlocks(text string) blockScan {
	var scan blockScan
	for _, m := range repeatBlockRe.FindAllStringSubmatch(text, -1) {
		reps, err := strconv.Atoi(m[1])
		if err != nil || reps < 1 {
			continue
		}
		scan.found = true
		c.log.Debug("found repeat block", "reps", reps, "text", m[2])

		for _, part := range fragmentSplitRe.Split(m[2], -1) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			scan.intervals = append(scan.intervals, c.parseFragment(part, reps))
		}
	}
	return scan
}

// parseFragment builds one interval from a repeat-block component such as
// "1km @ tempo" or "2min recovery". Duration and distance extraction are
// gated on a cue check so "tempo" alone doesn't pick up a default
// duration; a fragment carrying both cues gets both fields and the
// assembler settles the tie.
func (c *Converter) parseFragment(part string, reps int) models.Interval {
	lower := strings.ToLower(part)

	var duration int
	if strings.Contains(lower, "min") || strings.Contains(lower, "hour") {
		duration = ParseDuration(part)
	}
	var distance float64
	if strings.Contains(lower, "km") || strings.Contains(lower, "m") || strings.Contains(lower, "k ") {
		distance = ParseDistance(part)
	}

	intensity := ResolveIntensity(c.intensity, part)
	typ := models.IntervalWork
	if strings.Contains(lower, "recovery") || strings.Contains(lower, "rest") {
		typ = models.IntervalRecovery
		intensity = 1
	}

	return models.Interval{
		Repeat:    reps,
		Duration:  duration,
		Distance:  distance,
		Intensity: intensity,
		Type:      typ,
		Text:      part,
	}
}

// synthesize builds the unstructured fallback: an optional warmup, exactly
// one work interval, and an optional cooldown, in that order. The work
// interval's duration comes from the title when it carries a minute cue,
// else DefaultDuration; its intensity is resolved from the full text.
func (c *Converter) synthesize(text, title string) []models.Interval {
	c.log.Debug("no repeat blocks found, synthesizing simple workout", "title", title)
	var intervals []models.Interval

	if m := warmupRe.FindStringSubmatch(text); m != nil {
		intervals = append(intervals, models.Interval{
			Repeat:    1,
			Duration:  ParseDuration(m[1]),
			Intensity: 1,
			Type:      models.IntervalWarmup,
			Text:      "Warm up",
		})
	}

	duration := DefaultDuration
	if strings.Contains(strings.ToLower(title), "min") {
		duration = ParseDuration(title)
	}
	intervals = append(intervals, models.Interval{
		Repeat:    1,
		Duration:  duration,
		Intensity: ResolveIntensity(c.intensity, text),
		Type:      models.IntervalWork,
		Text:      title,
	})

	if m := cooldownRe.FindStringSubmatch(text); m != nil {
		intervals = append(intervals, models.Interval{
			Repeat:    1,
			Duration:  ParseDuration(m[1]),
			Intensity: 1,
			Type:      models.IntervalCooldown,
			Text:      "Cool down",
		})
	}

	return intervals
}
