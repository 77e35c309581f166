package youtube

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/codes"
)

// search.list caps maxResults at 50 per page
const searchPageSize = 50

type SearchOptions struct {
	// relevance (default), date, viewCount or rating
	Order string
	// e.g. "US"
	RegionCode string
	// ISO-8601, e.g. "2024-01-01T00:00:00Z"
	PublishedAfter string
}

// SearchVideoIDs resolves a search query to at most maxVideos video IDs,
// paginating with the same retry policy as comment fetches.
func (c *Client) SearchVideoIDs(ctx context.Context, query string, maxVideos int, opts SearchOptions) ([]string, error) {
	ctx, span := tracer.Start(ctx, "client:SearchVideoIDs")
	defer span.End()

	if opts.Order == "" {
		opts.Order = "relevance"
	}

	var ids []string
	pageToken := ""
	for len(ids) < maxVideos {
		params := map[string]string{
			"part":       "id",
			"q":          query,
			"type":       "video",
			"maxResults": strconv.Itoa(searchPageSize),
			"order":      opts.Order,
		}
		if opts.RegionCode != "" {
			params["regionCode"] = opts.RegionCode
		}
		if opts.PublishedAfter != "" {
			params["publishedAfter"] = opts.PublishedAfter
		}
		if pageToken != "" {
			params["pageToken"] = pageToken
		}

		var resp searchListResponse
		err := c.getJSON(ctx, "/search", params, &resp)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "search page failed")
			return ids, err
		}

		for _, item := range resp.Items {
			if item.Id.Kind != "youtube#video" {
				continue
			}
			ids = append(ids, item.Id.VideoId)
			if len(ids) >= maxVideos {
				break
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	return ids, nil
}
