package convert

import (
	"testing"
	"time"

	"github.com/claude/runsync/internal/models"
)

var testDate = time.Date(2026, 1, 28, 7, 30, 0, 0, time.UTC)

// TestAssembleWorkoutLeafInvariant verifies that every produced leaf
// carries exactly one of duration/distance, never both, never neither.
func TestAssembleWorkoutLeafInvariant(t *testing.T) {
	intervals := []models.Interval{
		{Repeat: 1, Duration: 600, Intensity: 1, Type: models.IntervalWarmup, Text: "Warm up"},
		{Repeat: 5, Distance: 1000, Intensity: 4, Type: models.IntervalWork, Text: "1km @ tempo"},
		// Both populated: duration must win.
		{Repeat: 1, Duration: 300, Distance: 4000, Intensity: 2, Type: models.IntervalWork, Text: "5min @ 4km pace"},
		// Neither populated: the 1800s time default applies.
		{Repeat: 1, Intensity: 2, Type: models.IntervalWork, Text: "90sec rest"},
	}

	w := AssembleWorkout("Test", "desc", testDate, intervals)

	if len(w.Steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(w.Steps))
	}

	for i, step := range w.Steps {
		leaves := step.Steps
		if step.Leaf != nil {
			leaves = []models.StepLeaf{*step.Leaf}
		}
		for _, leaf := range leaves {
			hasDuration := leaf.Duration > 0
			hasDistance := leaf.Distance > 0
			if hasDuration == hasDistance {
				t.Errorf("step %d leaf %+v: want exactly one of duration/distance", i, leaf)
			}
			if hasDuration && leaf.DurationType != models.DurationTime {
				t.Errorf("step %d: duration leaf has durationType %q", i, leaf.DurationType)
			}
			if hasDistance && leaf.DurationType != models.DurationDistance {
				t.Errorf("step %d: distance leaf has durationType %q", i, leaf.DurationType)
			}
			if leaf.TargetType != models.TargetPace {
				t.Errorf("step %d: targetType = %q, want pace", i, leaf.TargetType)
			}
		}
	}

	// Duration precedence over distance.
	if w.Steps[2].Leaf.Duration != 300 || w.Steps[2].Leaf.Distance != 0 {
		t.Errorf("both-cues leaf = %+v, want duration 300 and no distance", w.Steps[2].Leaf)
	}

	// Empty interval defaults to 1800s time.
	if w.Steps[3].Leaf.Duration != DefaultDuration {
		t.Errorf("default leaf duration = %d, want %d", w.Steps[3].Leaf.Duration, DefaultDuration)
	}
}

// TestAssembleWorkoutRepeatWrapping verifies the round-trip rule: repeat 1
// never produces a wrapper, repeat > 1 always does, with exactly one inner
// leaf.
func TestAssembleWorkoutRepeatWrapping(t *testing.T) {
	intervals := []models.Interval{
		{Repeat: 1, Duration: 600, Intensity: 1, Type: models.IntervalWarmup, Text: "Warm up"},
		{Repeat: 8, Distance: 400, Intensity: 7, Type: models.IntervalWork, Text: "400m @ 5k pace"},
		{Repeat: 8, Duration: 90, Intensity: 1, Type: models.IntervalRecovery, Text: "90sec recovery"},
	}

	w := AssembleWorkout("Speed Work", "desc", testDate, intervals)

	if w.Steps[0].Repeat != 0 || w.Steps[0].Leaf == nil {
		t.Errorf("repeat-1 interval produced a wrapper: %+v", w.Steps[0])
	}
	for _, i := range []int{1, 2} {
		if w.Steps[i].Repeat != 8 {
			t.Errorf("step %d repeat = %d, want 8", i, w.Steps[i].Repeat)
		}
		if len(w.Steps[i].Steps) != 1 {
			t.Errorf("step %d inner leaves = %d, want 1 (carried structurally, not unrolled)", i, len(w.Steps[i].Steps))
		}
	}
}

// TestAssembleWorkoutDate verifies the workout_date rendering.
func TestAssembleWorkoutDate(t *testing.T) {
	w := AssembleWorkout("Easy Run", "Easy run for 30 minutes", testDate, []models.Interval{
		{Repeat: 1, Duration: 1800, Intensity: 1, Type: models.IntervalWork, Text: "Easy Run"},
	})

	if w.WorkoutDate != "2026-01-28" {
		t.Errorf("workout_date = %q, want 2026-01-28", w.WorkoutDate)
	}
	if w.Name != "Easy Run" {
		t.Errorf("name = %q, want Easy Run", w.Name)
	}
}
