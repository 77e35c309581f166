package commands

import (
	"os"

	"opinionlens-backend/internal/checkpoint"
	"opinionlens-backend/internal/sink"
	"opinionlens-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	statusOut        *string
	statusCheckpoint *string
)

func init() {
	statusOut = statusCmd.Flags().String("out", "data/youtube_comments.csv", "Output CSV path.")
	statusCheckpoint = statusCmd.Flags().String("checkpoint", "data/checkpoints/processed_videos.csv", "Checkpoint CSV path.")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarizes the dataset and checkpoint state.",
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := sink.ReadStats(*statusOut)
		if err != nil {
			serviceutil.Fatal("failed to read output", err)
		}

		checkpointed, err := checkpoint.CountDone(*statusCheckpoint)
		if err != nil {
			serviceutil.Fatal("failed to read checkpoint", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Metric", "Value"})
		t.AppendRows([]table.Row{
			{"rows", stats.Rows},
			{"distinct comments", stats.Comments},
			{"replies", stats.Replies},
			{"videos in output", stats.Videos},
			{"videos checkpointed", checkpointed},
		})
		t.Render()
	},
}
