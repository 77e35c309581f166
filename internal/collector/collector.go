package collector

import (
	"context"
	"fmt"

	"opinionlens-backend/lib/youtube"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/collector")

// PageSource is the one remote capability the collector depends on: give
// it a page token, get back a page of threads and the next token.
// Satisfied by *youtube.Client, faked in tests.
type PageSource interface {
	CommentPage(ctx context.Context, videoID, pageToken string) (youtube.Page, error)
}

type Options struct {
	// hard cap on emitted records for this video. reaching it stops
	// paging immediately, possibly mid-reply-list.
	MaxComments int
	// also emit the replies the listing endpoint inlined. replies that
	// upstream did not inline are never fetched.
	IncludeReplies bool
}

// Collect walks the comment pages of one video and emits records through
// the callback as they complete, so memory stays bounded however large the
// cap is. Running out of pages before the cap is a normal end, not an
// error. A non-nil error from emit aborts the walk and is returned as-is.
func Collect(ctx context.Context, src PageSource, videoID string, opts Options, emit func(youtube.Comment) error) error {
	ctx, span := tracer.Start(ctx, "collector:Collect")
	defer span.End()
	span.SetAttributes(attribute.String("video_id", videoID))

	if opts.MaxComments <= 0 {
		return fmt.Errorf("collector: max comments must be positive, got %d", opts.MaxComments)
	}

	emitted := 0
	pageToken := ""
	for {
		page, err := src.CommentPage(ctx, videoID, pageToken)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "page fetch failed")
			return err
		}
		if len(page.Threads) == 0 {
			return nil
		}

		for _, th := range page.Threads {
			if err := emit(th.Top); err != nil {
				return err
			}
			emitted++
			if emitted >= opts.MaxComments {
				return nil
			}

			if !opts.IncludeReplies {
				continue
			}
			for _, reply := range th.Replies {
				if err := emit(reply); err != nil {
					return err
				}
				emitted++
				if emitted >= opts.MaxComments {
					return nil
				}
			}
		}

		if page.NextPageToken == "" {
			return nil
		}
		pageToken = page.NextPageToken
	}
}
