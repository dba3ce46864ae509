package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/claude/runsync/internal/upload"
)

var (
	workoutsAthleteID string
	workoutsAPIKey    string
	workoutsBaseURL   string
	listOldest        string
	listNewest        string
)

var workoutsCmd = &cobra.Command{
	Use:   "workouts",
	Short: "Manage workouts already on intervals.icu",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List planned workouts in a date range",
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a planned workout by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(workoutsCmd)
	workoutsCmd.AddCommand(listCmd)
	workoutsCmd.AddCommand(deleteCmd)

	workoutsCmd.PersistentFlags().StringVar(&workoutsAthleteID, "athlete-id", "", "intervals.icu athlete ID (or RUNSYNC_ATHLETE_ID)")
	workoutsCmd.PersistentFlags().StringVar(&workoutsAPIKey, "api-key", "", "intervals.icu API key (or RUNSYNC_API_KEY)")
	workoutsCmd.PersistentFlags().StringVar(&workoutsBaseURL, "base-url", upload.DefaultBaseURL, "intervals.icu API base URL")

	listCmd.Flags().StringVar(&listOldest, "oldest", "", "Earliest workout date to list (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listNewest, "newest", "", "Latest workout date to list (YYYY-MM-DD)")
}

func workoutsClient() (*upload.Client, error) {
	athleteID := envOr(workoutsAthleteID, "RUNSYNC_ATHLETE_ID")
	apiKey := envOr(workoutsAPIKey, "RUNSYNC_API_KEY")
	if athleteID == "" || apiKey == "" {
		return nil, fmt.Errorf("--athlete-id and --api-key are required (or RUNSYNC_ATHLETE_ID / RUNSYNC_API_KEY)")
	}
	return upload.NewClient(workoutsBaseURL, athleteID, apiKey, newLogger()), nil
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := workoutsClient()
	if err != nil {
		return err
	}

	workouts, err := client.ListWorkouts(context.Background(), listOldest, listNewest)
	if err != nil {
		return fmt.Errorf("listing workouts: %w", err)
	}

	if len(workouts) == 0 {
		fmt.Println("No planned workouts found")
		return nil
	}
	for _, w := range workouts {
		fmt.Printf("%8d  %s  %s\n", w.ID, w.WorkoutDate, w.Name)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid workout ID %q", args[0])
	}

	client, err := workoutsClient()
	if err != nil {
		return err
	}

	if err := client.DeleteWorkout(context.Background(), id); err != nil {
		return fmt.Errorf("deleting workout %d: %w", id, err)
	}
	fmt.Printf("Deleted workout %d\n", id)
	return nil
}
