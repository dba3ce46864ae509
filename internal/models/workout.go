package models

import "encoding/json"

// DateLayout is the wire format for workout_date.
const DateLayout = "2006-01-02"

// Interval types produced by the description parser.
const (
	IntervalWarmup   = "warmup"
	IntervalWork     = "work"
	IntervalRecovery = "recovery"
	IntervalCooldown = "cooldown"
)

// Interval is one parsed unit of a workout description. Duration is in
// seconds, Distance in meters; at most one of the two is meaningful and
// the assembler prefers Duration. Repeat is the enclosing block's count
// (1 outside repeat blocks). Text keeps the original fragment.
type Interval struct {
	Repeat    int
	Duration  int
	Distance  float64
	Intensity int
	Type      string
	Text      string
}

// Duration and target types used on step leaves.
const (
	DurationTime     = "time"
	DurationDistance = "distance"
	TargetPace       = "pace"
)

// StepLeaf is a single prescribed unit of work in the intervals.icu
// workout document. Exactly one of Duration/Distance is set, matching
// DurationType; both carry omitempty so the unused one never appears on
// the wire.
type StepLeaf struct {
	Duration     int     `json:"duration,omitempty"`
	Distance     float64 `json:"distance,omitempty"`
	DurationType string  `json:"durationType"`
	TargetType   string  `json:"targetType"`
	Target       int     `json:"target"`
	Text         string  `json:"text"`
}

// Step is one entry in a workout's step list: either a bare leaf
// (Repeat <= 1) or a repeat block wrapping a single inner leaf. The
// repeat count is carried structurally, never by unrolling.
type Step struct {
	Repeat int
	Steps  []StepLeaf
	Leaf   *StepLeaf
}

type repeatBlock struct {
	Repeat int        `json:"repeat"`
	Steps  []StepLeaf `json:"steps"`
}

func (s Step) MarshalJSON() ([]byte, error) {
	if s.Repeat > 1 {
		return json.Marshal(repeatBlock{Repeat: s.Repeat, Steps: s.Steps})
	}
	return json.Marshal(s.Leaf)
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var probe struct {
		Repeat int `json:"repeat"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Repeat > 1 {
		var rb repeatBlock
		if err := json.Unmarshal(data, &rb); err != nil {
			return err
		}
		*s = Step{Repeat: rb.Repeat, Steps: rb.Steps}
		return nil
	}
	var leaf StepLeaf
	if err := json.Unmarshal(data, &leaf); err != nil {
		return err
	}
	*s = Step{Leaf: &leaf}
	return nil
}

// Workout is the intervals.icu workout document built from one calendar
// event. WorkoutDate is rendered as YYYY-MM-DD.
type Workout struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WorkoutDate string `json:"workout_date"`
	Steps       []Step `json:"steps"`
}
