package convert

import (
	"time"

	"github.com/claude/runsync/internal/models"
)

// AssembleWorkout builds the intervals.icu workout document from a parsed
// interval sequence. Intervals with repeat > 1 become repeat-block steps
// wrapping a single inner leaf; everything else is appended as a bare leaf.
func AssembleWorkout(name, description string, date time.Time, intervals []models.Interval) models.Workout {
	w := models.Workout{
		Name:        name,
		Description: description,
		WorkoutDate: date.Format(models.DateLayout),
	}

	for _, iv := range intervals {
		leaf := buildLeaf(iv)
		if iv.Repeat > 1 {
			w.Steps = append(w.Steps, models.Step{
				Repeat: iv.Repeat,
				Steps:  []models.StepLeaf{leaf},
			})
		} else {
			w.Steps = append(w.Steps, models.Step{Leaf: &leaf})
		}
	}

	return w
}

// buildLeaf picks the step representation for an interval: duration first,
// then distance, else the 30-minute time default. The result always
// carries exactly one of duration/distance.
func buildLeaf(iv models.Interval) models.StepLeaf {
	leaf := models.StepLeaf{
		TargetType: models.TargetPace,
		Target:     iv.Intensity,
		Text:       iv.Text,
	}

	switch {
	case iv.Duration > 0:
		leaf.Duration = iv.Duration
		leaf.DurationType = models.DurationTime
	case iv.Distance > 0:
		leaf.Distance = iv.Distance
		leaf.DurationType = models.DurationDistance
	default:
		leaf.Duration = DefaultDuration
		leaf.DurationType = models.DurationTime
	}

	return leaf
}
