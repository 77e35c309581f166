package watcher

import (
	"context"

	"opinionlens-backend/lib/youtube"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("internal/watcher")

// Source lists comment threads newest first, which is what lets the
// poller stop at the first timestamp at or below the floor.
type Source interface {
	RecentCommentPage(ctx context.Context, videoID, pageToken string) (youtube.Page, error)
}

// PollNewer returns the top-level comments published strictly after
// floor, newest first, capped at max. Timestamps are upstream ISO-8601
// strings; lexicographic comparison matches chronological order for them.
// Replies are not expanded when polling.
func PollNewer(ctx context.Context, src Source, videoID, floor string, max int) ([]youtube.Comment, error) {
	ctx, span := tracer.Start(ctx, "watcher:PollNewer")
	defer span.End()
	span.SetAttributes(
		attribute.String("video_id", videoID),
		attribute.String("floor", floor),
	)

	var out []youtube.Comment
	pageToken := ""
	for {
		page, err := src.RecentCommentPage(ctx, videoID, pageToken)
		if err != nil {
			return out, err
		}
		for _, th := range page.Threads {
			if th.Top.PublishedAt <= floor {
				// sorted newest first: everything from here on
				// is old news
				return out, nil
			}
			out = append(out, th.Top)
			if len(out) >= max {
				return out, nil
			}
		}
		if page.NextPageToken == "" {
			return out, nil
		}
		pageToken = page.NextPageToken
	}
}

// Ceiling returns the newest published_at among the comments, or the
// current floor when the slice is empty.
func Ceiling(comments []youtube.Comment, floor string) string {
	newest := floor
	for _, c := range comments {
		if c.PublishedAt > newest {
			newest = c.PublishedAt
		}
	}
	return newest
}
