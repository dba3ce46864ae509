// Package convert parses free-form workout descriptions into structured
// interval plans and assembles them into intervals.icu workout documents.
//
// The parsing core has no failure modes: every extractor documents a
// default for the no-match case and the interval extractor always emits at
// least one work interval, so a batch of events converts end to end no
// matter how loose the source text is.
package convert

import (
	"io"
	"log/slog"
	"strings"

	"github.com/claude/runsync/internal/models"
)

// Converter turns calendar events into intervals.icu workout documents.
// The intensity table is fixed at construction and never mutated, so a
// single Converter is safe to share across goroutines.
type Converter struct {
	intensity []IntensityRule
	log       *slog.Logger
}

// New creates a Converter. A nil table selects DefaultIntensityTable; a
// nil logger discards.
func New(table []IntensityRule, log *slog.Logger) *Converter {
	if table == nil {
		table = DefaultIntensityTable()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{intensity: table, log: log}
}

// ConvertEvent converts one calendar event into a workout document.
func (c *Converter) ConvertEvent(ev models.Event) models.Workout {
	intervals := c.ExtractIntervals(ev.Description, ev.Summary)
	w := AssembleWorkout(ev.Summary, ev.Description, ev.Start, intervals)
	c.log.Debug("converted event", "name", w.Name, "date", w.WorkoutDate, "steps", len(w.Steps))
	return w
}

// ProcessCalendar converts every training event in source order. Parsing
// carries no cross-event state, so the output depends only on the input
// slice. Events whose summary mentions neither "run" nor "workout" are
// skipped.
func (c *Converter) ProcessCalendar(events []models.Event) []models.Workout {
	var workouts []models.Workout
	for _, ev := range events {
		if !IsTrainingEvent(ev.Summary) {
			continue
		}
		workouts = append(workouts, c.ConvertEvent(ev))
	}
	c.log.Info("calendar processed", "events", len(events), "workouts", len(workouts))
	return workouts
}

// IsTrainingEvent reports whether a calendar entry looks like a workout
// rather than an unrelated appointment.
func IsTrainingEvent(summary string) bool {
	s := strings.ToLower(summary)
	return strings.Contains(s, "run") || strings.Contains(s, "workout")
}
