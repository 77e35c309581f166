package youtube

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// CommentPage fetches one page of comment threads for a video, ordered by
// relevance (the listing default used for dataset scrapes).
func (c *Client) CommentPage(ctx context.Context, videoID, pageToken string) (Page, error) {
	return c.commentPage(ctx, "client:CommentPage", videoID, pageToken, "relevance")
}

// RecentCommentPage fetches one page of comment threads ordered newest
// first, which lets the watch poller stop at the first already-seen
// timestamp.
func (c *Client) RecentCommentPage(ctx context.Context, videoID, pageToken string) (Page, error) {
	return c.commentPage(ctx, "client:RecentCommentPage", videoID, pageToken, "time")
}

func (c *Client) commentPage(ctx context.Context, spanName, videoID, pageToken, order string) (Page, error) {
	ctx, span := tracer.Start(ctx, spanName, oteltrace.WithAttributes(
		attribute.String("order", order),
	))
	defer span.End()

	query := map[string]string{
		"part":       "snippet,replies",
		"videoId":    videoID,
		"maxResults": strconv.Itoa(c.pageSize),
		"textFormat": "plainText",
		"order":      order,
	}
	if pageToken != "" {
		query["pageToken"] = pageToken
	}

	var resp threadListResponse
	err := c.getJSON(ctx, "/commentThreads", query, &resp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch comment page")
		return Page{}, err
	}

	page := Page{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		thread, err := item.toThread(videoID)
		if err != nil {
			span.SetStatus(codes.Error, "malformed comment thread")
			return Page{}, fmt.Errorf("video %s: %w", videoID, err)
		}
		page.Threads = append(page.Threads, thread)
	}
	return page, nil
}
