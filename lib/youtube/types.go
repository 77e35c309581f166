package youtube

import "fmt"

// Comment is one collected comment, top-level or reply. Timestamps are
// passed through in the upstream ISO-8601 text form without reparsing.
type Comment struct {
	ID          string
	VideoID     string
	ParentID    string // empty for top-level comments
	IsReply     bool
	Author      string
	Text        string
	Likes       int64
	PublishedAt string
	UpdatedAt   string
	ReplyCount  int64 // always 0 on replies
}

// Thread is a top-level comment plus the replies the listing endpoint
// chose to inline. Upstream does not inline every reply: ReplyCount on the
// top-level comment may exceed len(Replies), and deeper nesting is never
// returned. Those missing replies are not fetched.
type Thread struct {
	Top     Comment
	Replies []Comment
}

// Page is one page of comment threads plus the continuation token. An
// empty NextPageToken means the walk is done.
type Page struct {
	Threads       []Thread
	NextPageToken string
}

type commentSnippet struct {
	AuthorDisplayName string `json:"authorDisplayName"`
	TextDisplay       string `json:"textDisplay"`
	LikeCount         int64  `json:"likeCount"`
	PublishedAt       string `json:"publishedAt"`
	UpdatedAt         string `json:"updatedAt"`
}

type commentResource struct {
	Id      string         `json:"id"`
	Snippet commentSnippet `json:"snippet"`
}

type threadResource struct {
	Id      string `json:"id"`
	Snippet struct {
		TopLevelComment commentResource `json:"topLevelComment"`
		TotalReplyCount int64           `json:"totalReplyCount"`
	} `json:"snippet"`
	Replies struct {
		Comments []commentResource `json:"comments"`
	} `json:"replies"`
}

type threadListResponse struct {
	Items         []threadResource `json:"items"`
	NextPageToken string           `json:"nextPageToken"`
}

// converts the wire shape into domain records, validating at the boundary
// so malformed payloads fail here with a clear diagnostic instead of deep
// in persistence.
func (t threadResource) toThread(videoID string) (Thread, error) {
	top := t.Snippet.TopLevelComment
	if top.Id == "" {
		return Thread{}, fmt.Errorf("comment thread %q has no top-level comment id", t.Id)
	}

	out := Thread{
		Top: Comment{
			ID:          top.Id,
			VideoID:     videoID,
			IsReply:     false,
			Author:      top.Snippet.AuthorDisplayName,
			Text:        top.Snippet.TextDisplay,
			Likes:       top.Snippet.LikeCount,
			PublishedAt: top.Snippet.PublishedAt,
			UpdatedAt:   top.Snippet.UpdatedAt,
			ReplyCount:  t.Snippet.TotalReplyCount,
		},
	}
	for _, r := range t.Replies.Comments {
		if r.Id == "" {
			return Thread{}, fmt.Errorf("reply under comment %q has no id", top.Id)
		}
		out.Replies = append(out.Replies, Comment{
			ID:          r.Id,
			VideoID:     videoID,
			ParentID:    top.Id,
			IsReply:     true,
			Author:      r.Snippet.AuthorDisplayName,
			Text:        r.Snippet.TextDisplay,
			Likes:       r.Snippet.LikeCount,
			PublishedAt: r.Snippet.PublishedAt,
			UpdatedAt:   r.Snippet.UpdatedAt,
		})
	}
	return out, nil
}

type searchListResponse struct {
	Items []struct {
		Id struct {
			Kind    string `json:"kind"`
			VideoId string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}
