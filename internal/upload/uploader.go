package upload

import (
	"context"
	"io"
	"log/slog"

	"github.com/claude/runsync/internal/convert"
	"github.com/claude/runsync/internal/models"
)

// Stats tracks sync progress.
type Stats struct {
	EventsTotal      int `json:"events_total"`
	WorkoutsTotal    int `json:"workouts_total"`
	WorkoutsUploaded int `json:"workouts_uploaded"`
	WorkoutsSkipped  int `json:"workouts_skipped"`
	WorkoutsErrored  int `json:"workouts_errored"`
}

// Uploader converts calendar events and sends the results to
// intervals.icu, skipping events the state DB has already seen.
type Uploader struct {
	client *Client
	state  *StateDB
	conv   *convert.Converter
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates an Uploader. client may be nil in dry-run mode; state may
// be nil to disable skip tracking.
func New(client *Client, state *StateDB, conv *convert.Converter, dryRun bool, log *slog.Logger) *Uploader {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Uploader{
		client: client,
		state:  state,
		conv:   conv,
		dryRun: dryRun,
		log:    log,
	}
}

// Run converts every training event and uploads the results in source
// order. Per-event upload failures are counted and logged but do not stop
// the batch.
func (u *Uploader) Run(ctx context.Context, events []models.Event) (*Stats, error) {
	u.stats.EventsTotal = len(events)

	for _, ev := range events {
		if !convert.IsTrainingEvent(ev.Summary) {
			continue
		}

		w := u.conv.ConvertEvent(ev)
		u.stats.WorkoutsTotal++

		hash, err := HashWorkout(w)
		if err != nil {
			u.stats.WorkoutsErrored++
			u.log.Warn("hash failed", "name", w.Name, "error", err)
			continue
		}

		uid := ev.UID
		if uid == "" {
			uid = w.Name + "/" + w.WorkoutDate
		}

		if u.state != nil {
			uploaded, err := u.state.IsUploaded(uid, hash)
			if err != nil {
				u.stats.WorkoutsErrored++
				u.log.Warn("state check failed", "uid", uid, "error", err)
				continue
			}
			if uploaded {
				u.stats.WorkoutsSkipped++
				continue
			}
		}

		if u.dryRun {
			u.log.Info("dry-run: would upload", "name", w.Name, "date", w.WorkoutDate, "steps", len(w.Steps))
		} else {
			if _, err := u.client.CreateWorkout(ctx, w); err != nil {
				u.stats.WorkoutsErrored++
				u.log.Warn("upload failed", "name", w.Name, "error", err)
				continue
			}
			if u.state != nil {
				if err := u.state.MarkUploaded(uid, hash, w.WorkoutDate); err != nil {
					u.log.Warn("failed to mark uploaded", "uid", uid, "error", err)
				}
			}
		}
		u.stats.WorkoutsUploaded++
	}

	u.log.Info("sync complete",
		"events", u.stats.EventsTotal,
		"uploaded", u.stats.WorkoutsUploaded,
		"skipped", u.stats.WorkoutsSkipped,
		"errored", u.stats.WorkoutsErrored,
	)
	return &u.stats, nil
}
