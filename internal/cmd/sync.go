package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/claude/runsync/internal/convert"
	"github.com/claude/runsync/internal/ics"
	"github.com/claude/runsync/internal/models"
	"github.com/claude/runsync/internal/upload"
)

var (
	syncURL       string
	syncOutput    string
	syncAPIUpload bool
	syncAthleteID string
	syncAPIKey    string
	syncBaseURL   string
	syncDryRun    bool
	syncStateDir  string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the calendar and convert workouts, optionally uploading them",
	Long: `Fetch the ICS calendar feed, convert each running workout into
structured intervals, and either write the result to a JSON file or
upload it to intervals.icu. Uploads are deduplicated through a local
state database so re-running is safe.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVarP(&syncURL, "url", "u", "", "ICS calendar feed URL (or RUNSYNC_ICS_URL)")
	syncCmd.Flags().StringVarP(&syncOutput, "output", "o", "workouts.json", "Path to write converted workouts as JSON")
	syncCmd.Flags().BoolVar(&syncAPIUpload, "api-upload", false, "Upload converted workouts to intervals.icu")
	syncCmd.Flags().StringVar(&syncAthleteID, "athlete-id", "", "intervals.icu athlete ID (or RUNSYNC_ATHLETE_ID)")
	syncCmd.Flags().StringVar(&syncAPIKey, "api-key", "", "intervals.icu API key (or RUNSYNC_API_KEY)")
	syncCmd.Flags().StringVar(&syncBaseURL, "base-url", upload.DefaultBaseURL, "intervals.icu API base URL")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Convert and report but don't upload")
	syncCmd.Flags().StringVar(&syncStateDir, "state-dir", "", "Directory for the upload state database (default ~/.runsync)")
}

func runSync(cmd *cobra.Command, args []string) error {
	log := newLogger()
	ctx := context.Background()

	url := envOr(syncURL, "RUNSYNC_ICS_URL")
	if url == "" {
		return fmt.Errorf("calendar URL is required (--url or RUNSYNC_ICS_URL)")
	}

	events, err := ics.NewClient(url, log).Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching calendar: %w", err)
	}
	log.Info("calendar fetched", "events", len(events))

	conv := convert.New(nil, log)

	if !syncAPIUpload {
		workouts := conv.ProcessCalendar(events)
		if err := writeWorkouts(syncOutput, workouts); err != nil {
			return err
		}
		fmt.Printf("Converted %d workouts to %s\n", len(workouts), syncOutput)
		return nil
	}

	athleteID := envOr(syncAthleteID, "RUNSYNC_ATHLETE_ID")
	apiKey := envOr(syncAPIKey, "RUNSYNC_API_KEY")
	if !syncDryRun && (athleteID == "" || apiKey == "") {
		return fmt.Errorf("--athlete-id and --api-key are required for upload (or RUNSYNC_ATHLETE_ID / RUNSYNC_API_KEY)")
	}

	stateDir := syncStateDir
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".runsync")
	}

	state, err := upload.OpenStateDB(stateDir)
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer state.Close()

	var client *upload.Client
	if !syncDryRun {
		client = upload.NewClient(syncBaseURL, athleteID, apiKey, log)
	} else {
		log.Info("dry run, workouts will be converted but not uploaded")
	}

	stats, err := upload.New(client, state, conv, syncDryRun, log).Run(ctx, events)
	printStats(stats)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	return nil
}

func writeWorkouts(path string, workouts []models.Workout) error {
	data, err := json.MarshalIndent(workouts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding workouts: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func printStats(stats *upload.Stats) {
	if stats == nil {
		return
	}
	fmt.Println()
	fmt.Println("=== Sync Summary ===")
	fmt.Printf("  Events total:       %d\n", stats.EventsTotal)
	fmt.Printf("  Workouts total:     %d\n", stats.WorkoutsTotal)
	fmt.Printf("  Workouts uploaded:  %d\n", stats.WorkoutsUploaded)
	fmt.Printf("  Workouts skipped:   %d (already uploaded)\n", stats.WorkoutsSkipped)
	fmt.Printf("  Workouts errored:   %d\n", stats.WorkoutsErrored)
	fmt.Println()
}
