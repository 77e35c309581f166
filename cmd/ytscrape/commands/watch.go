package commands

import (
	"log/slog"
	"time"

	"opinionlens-backend/internal/sink"
	"opinionlens-backend/internal/watcher"
	"opinionlens-backend/lib/serviceutil"
	"opinionlens-backend/lib/urlutil"

	"github.com/spf13/cobra"
)

var (
	watchOut        *string
	watchInterval   *time.Duration
	watchMaxPerPoll *int
)

func init() {
	watchOut = watchCmd.Flags().String("out", "data/youtube_comments.csv", "Output CSV path.")
	watchInterval = watchCmd.Flags().Duration("interval", 30*time.Second, "Time between polls.")
	watchMaxPerPoll = watchCmd.Flags().Int("max-per-poll", 500, "Max comments taken per poll.")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <video url or id>",
	Short: "Polls a video for newly published comments and appends them to the output.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		videoId, err := urlutil.ExtractVideoID(args[0])
		if err != nil {
			serviceutil.Fatal("bad video argument", err)
		}

		ctx := serviceutil.SignalContext()
		client := newClient()

		out, err := sink.OpenCSV(*watchOut)
		if err != nil {
			serviceutil.Fatal("failed to open output", err)
		}
		defer out.Close()

		// only comments published after startup are taken
		floor := time.Now().UTC().Format(time.RFC3339)
		slog.Info("watching video", "video", videoId, "since", floor, "interval", *watchInterval)

		ticker := time.NewTicker(*watchInterval)
		defer ticker.Stop()
		for {
			comments, err := watcher.PollNewer(ctx, client, videoId, floor, *watchMaxPerPoll)
			if err != nil {
				slog.Warn("poll failed", "video", videoId, "err", err)
			} else if len(comments) > 0 {
				floor = watcher.Ceiling(comments, floor)
				fresh := out.FilterNew(comments)
				if err := out.Append(fresh); err != nil {
					serviceutil.Fatal("failed to append output", err)
				}
				slog.Info("new comments", "video", videoId, "count", len(fresh), "floor", floor)
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	},
}
