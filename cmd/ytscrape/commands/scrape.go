package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"opinionlens-backend/internal/checkpoint"
	"opinionlens-backend/internal/commentstore"
	"opinionlens-backend/internal/runner"
	"opinionlens-backend/internal/sink"
	"opinionlens-backend/lib/serviceutil"
	"opinionlens-backend/lib/sqliteutil"
	"opinionlens-backend/lib/urlutil"
	"opinionlens-backend/lib/youtube"

	"github.com/spf13/cobra"
)

var (
	scrapeQueries        *string
	scrapeVideoIds       *string
	scrapeOut            *string
	scrapeCheckpoint     *string
	scrapeDb             *string
	scrapeVideosPerQuery *int
	scrapeMaxPerVideo    *int
	scrapeOrder          *string
	scrapeRegion         *string
	scrapePublishedAfter *string
	scrapeNoReplies      *bool
)

func init() {
	scrapeQueries = scrapeCmd.Flags().String("queries", "", "Path to a file with one search query per line.")
	scrapeVideoIds = scrapeCmd.Flags().String("video-ids", "", "Comma-separated video IDs or URLs to scrape directly.")
	scrapeOut = scrapeCmd.Flags().String("out", "data/youtube_comments.csv", "Output CSV path.")
	scrapeCheckpoint = scrapeCmd.Flags().String("checkpoint", "data/checkpoints/processed_videos.csv", "Checkpoint CSV of processed video IDs.")
	scrapeDb = scrapeCmd.Flags().String("db", "", "Optionally mirror comments into a sqlite database at this path.")
	scrapeVideosPerQuery = scrapeCmd.Flags().Int("videos-per-query", 200, "Max videos to resolve per search query.")
	scrapeMaxPerVideo = scrapeCmd.Flags().Int("max-comments-per-video", 2000, "Max comments collected per video.")
	scrapeOrder = scrapeCmd.Flags().String("order", "relevance", "Search ordering: relevance, date, viewCount or rating.")
	scrapeRegion = scrapeCmd.Flags().String("region", "", "Region code for search, e.g. US.")
	scrapePublishedAfter = scrapeCmd.Flags().String("published-after", "", "ISO-8601 lower bound for search, e.g. 2024-01-01T00:00:00Z.")
	scrapeNoReplies = scrapeCmd.Flags().Bool("no-replies", false, "Skip inlined replies, collect top-level comments only.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape (--queries <file> | --video-ids <id,id,...>) [--out <csv>]",
	Short: "Scrapes comments for a set of videos into an append-only CSV.",
	Run: func(cmd *cobra.Command, args []string) {
		if (*scrapeQueries == "") == (*scrapeVideoIds == "") {
			serviceutil.Fatal(
				"bad arguments",
				fmt.Errorf("exactly one of --queries and --video-ids is required"),
			)
		}

		ctx := serviceutil.SignalContext()
		client := newClient()

		videoIds, err := resolveVideos(ctx, client)
		if err != nil {
			serviceutil.Fatal("failed to resolve videos", err)
		}
		if len(videoIds) == 0 {
			slog.Info("nothing to scrape")
			return
		}

		out, err := sink.OpenCSV(*scrapeOut)
		if err != nil {
			serviceutil.Fatal("failed to open output", err)
		}
		defer out.Close()

		marks, err := checkpoint.Open(*scrapeCheckpoint)
		if err != nil {
			serviceutil.Fatal("failed to open checkpoint", err)
		}
		defer marks.Close()

		r := runner.Runner{
			Source:              client,
			Sink:                out,
			Checkpoints:         marks,
			MaxCommentsPerVideo: *scrapeMaxPerVideo,
			IncludeReplies:      !*scrapeNoReplies,
		}
		if *scrapeDb != "" {
			db, err := sqliteutil.OpenDB(commentstore.Schema, *scrapeDb)
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer db.Close()
			store := commentstore.NewStore(db)
			r.Store = &store
		}

		t1 := time.Now()
		sum, err := r.Run(ctx, videoIds)
		if err != nil && !errors.Is(err, context.Canceled) {
			serviceutil.Fatal("scrape aborted", err)
		}

		slog.Info(
			"scrape finished",
			"videos", sum.VideosProcessed,
			"skipped", sum.VideosSkipped,
			"failed", sum.VideosFailed,
			"new_comments", sum.CommentsWritten,
			"seconds", time.Since(t1).Seconds(),
			"out", *scrapeOut,
		)
	},
}

func resolveVideos(ctx context.Context, client *youtube.Client) ([]string, error) {
	if *scrapeVideoIds != "" {
		var ids []string
		for _, raw := range strings.Split(*scrapeVideoIds, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := urlutil.ExtractVideoID(raw)
			if err != nil {
				// one bad entry doesn't kill the batch
				slog.Warn("skipping unresolvable video", "input", raw, "err", err)
				continue
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	queries, err := readQueries(*scrapeQueries)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, q := range queries {
		found, err := client.SearchVideoIDs(ctx, q, *scrapeVideosPerQuery, youtube.SearchOptions{
			Order:          *scrapeOrder,
			RegionCode:     *scrapeRegion,
			PublishedAfter: *scrapePublishedAfter,
		})
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", q, err)
		}
		slog.Info("resolved query", "query", q, "videos", len(found))
		ids = append(ids, found...)
	}
	return ids, nil
}

func readQueries(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var queries []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	return queries, scanner.Err()
}
