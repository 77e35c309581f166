package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"opinionlens-backend/internal/checkpoint"
	"opinionlens-backend/internal/collector"
	"opinionlens-backend/internal/commentstore"
	"opinionlens-backend/internal/sink"
	"opinionlens-backend/lib/youtube"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("internal/runner")

// comments buffered before they are filtered and appended
const flushEvery = 500

// errPersist marks local write failures so they abort the run instead of
// being mistaken for a remote failure on the current video.
var errPersist = errors.New("persist failure")

// Runner drives collection across a list of videos: collect, dedup,
// append, checkpoint, move on. A fatal remote failure on one video never
// aborts the batch; the video is checkpointed anyway so the next run does
// not get stuck on it.
type Runner struct {
	Source      collector.PageSource
	Sink        *sink.CSVSink
	Checkpoints *checkpoint.Store
	// optional secondary output
	Store *commentstore.Store

	MaxCommentsPerVideo int
	IncludeReplies      bool
}

type Summary struct {
	VideosProcessed int
	VideosSkipped   int
	VideosFailed    int
	CommentsWritten int
}

func (r Runner) Run(ctx context.Context, videoIDs []string) (Summary, error) {
	ctx, span := tracer.Start(ctx, "runner:Run")
	defer span.End()
	span.SetAttributes(attribute.Int("videos", len(videoIDs)))

	var sum Summary
	for _, videoID := range videoIDs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if r.Checkpoints.Done(videoID) {
			sum.VideosSkipped++
			continue
		}

		written, err := r.collectOne(ctx, videoID)
		sum.CommentsWritten += written
		switch {
		case err == nil:
			sum.VideosProcessed++
			slog.Info("video done", "video", videoID, "new_comments", written)
		case errors.Is(err, errPersist) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			// local failure or shutdown: do not checkpoint, the
			// video deserves another attempt next run
			return sum, err
		default:
			sum.VideosFailed++
			slog.Warn("failed to scrape video, skipping", "video", videoID, "err", err)
		}

		if err := r.Checkpoints.MarkDone(videoID); err != nil {
			return sum, fmt.Errorf("%w: %w", errPersist, err)
		}
	}
	return sum, nil
}

func (r Runner) collectOne(ctx context.Context, videoID string) (int, error) {
	batch := make([]youtube.Comment, 0, flushEvery)
	written := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		fresh := r.Sink.FilterNew(batch)
		batch = batch[:0]
		if len(fresh) == 0 {
			return nil
		}
		if err := r.Sink.Append(fresh); err != nil {
			return fmt.Errorf("%w: %w", errPersist, err)
		}
		if r.Store != nil {
			if err := r.Store.InsertComments(ctx, fresh); err != nil {
				return fmt.Errorf("%w: %w", errPersist, err)
			}
		}
		written += len(fresh)
		return nil
	}

	opts := collector.Options{
		MaxComments:    r.MaxCommentsPerVideo,
		IncludeReplies: r.IncludeReplies,
	}
	collectErr := collector.Collect(ctx, r.Source, videoID, opts, func(c youtube.Comment) error {
		batch = append(batch, c)
		if len(batch) >= flushEvery {
			return flush()
		}
		return nil
	})

	// flush whatever arrived before a failure; dedup makes the partial
	// rows harmless on a rerun
	if err := flush(); err != nil {
		return written, err
	}
	return written, collectErr
}
