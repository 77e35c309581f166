package collector

import (
	"context"
	"fmt"
	"testing"

	"opinionlens-backend/lib/youtube"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	// keyed by page token, "" is the first page
	pages map[string]youtube.Page
	err   error
	calls int
}

func (f *fakeSource) CommentPage(_ context.Context, _ string, pageToken string) (youtube.Page, error) {
	f.calls++
	if f.err != nil {
		return youtube.Page{}, f.err
	}
	page, ok := f.pages[pageToken]
	if !ok {
		return youtube.Page{}, fmt.Errorf("unexpected page token %q", pageToken)
	}
	return page, nil
}

func top(id string, replies ...string) youtube.Thread {
	th := youtube.Thread{
		Top: youtube.Comment{
			ID:         id,
			VideoID:    "vid00000001",
			ReplyCount: int64(len(replies)),
		},
	}
	for _, r := range replies {
		th.Replies = append(th.Replies, youtube.Comment{
			ID:       r,
			VideoID:  "vid00000001",
			ParentID: id,
			IsReply:  true,
		})
	}
	return th
}

func collectAll(t *testing.T, src PageSource, opts Options) []youtube.Comment {
	t.Helper()
	var got []youtube.Comment
	err := Collect(context.Background(), src, "vid00000001", opts, func(c youtube.Comment) error {
		got = append(got, c)
		return nil
	})
	require.NoError(t, err)
	return got
}

func ids(comments []youtube.Comment) []string {
	out := make([]string, len(comments))
	for i, c := range comments {
		out[i] = c.ID
	}
	return out
}

func TestCollectWalksAllPages(t *testing.T) {
	src := &fakeSource{pages: map[string]youtube.Page{
		"":   {Threads: []youtube.Thread{top("c1", "r1"), top("c2")}, NextPageToken: "p2"},
		"p2": {Threads: []youtube.Thread{top("c3")}},
	}}

	got := collectAll(t, src, Options{MaxComments: 100, IncludeReplies: true})
	require.Equal(t, []string{"c1", "r1", "c2", "c3"}, ids(got))

	// replies come right after their parent, tagged with its id
	require.True(t, got[1].IsReply)
	require.Equal(t, "c1", got[1].ParentID)
}

func TestCollectStopsAtCapWithoutAnotherPageRequest(t *testing.T) {
	src := &fakeSource{pages: map[string]youtube.Page{
		"": {Threads: []youtube.Thread{top("c1"), top("c2"), top("c3")}, NextPageToken: "p2"},
	}}

	got := collectAll(t, src, Options{MaxComments: 2, IncludeReplies: true})
	require.Equal(t, []string{"c1", "c2"}, ids(got))
	require.Equal(t, 1, src.calls)
}

func TestCollectCapCutsMidReplyList(t *testing.T) {
	src := &fakeSource{pages: map[string]youtube.Page{
		"": {Threads: []youtube.Thread{top("c1", "r1", "r2", "r3")}, NextPageToken: "p2"},
	}}

	got := collectAll(t, src, Options{MaxComments: 3, IncludeReplies: true})
	require.Equal(t, []string{"c1", "r1", "r2"}, ids(got))
	require.Equal(t, 1, src.calls)
}

func TestCollectEndsOnMissingToken(t *testing.T) {
	// cap=2000, video has 3 comments: exactly 3 records, no error
	src := &fakeSource{pages: map[string]youtube.Page{
		"": {Threads: []youtube.Thread{top("c1"), top("c2"), top("c3")}},
	}}

	got := collectAll(t, src, Options{MaxComments: 2000, IncludeReplies: true})
	require.Len(t, got, 3)
	require.Equal(t, 1, src.calls)
}

func TestCollectEndsOnEmptyPage(t *testing.T) {
	src := &fakeSource{pages: map[string]youtube.Page{
		"": {NextPageToken: "p2"},
	}}

	got := collectAll(t, src, Options{MaxComments: 10})
	require.Empty(t, got)
	require.Equal(t, 1, src.calls)
}

func TestCollectSkipsRepliesWhenDisabled(t *testing.T) {
	src := &fakeSource{pages: map[string]youtube.Page{
		"": {Threads: []youtube.Thread{top("c1", "r1", "r2")}},
	}}

	got := collectAll(t, src, Options{MaxComments: 10, IncludeReplies: false})
	require.Equal(t, []string{"c1"}, ids(got))
}

func TestCollectPropagatesFetchError(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("api is down")}

	err := Collect(context.Background(), src, "vid00000001", Options{MaxComments: 10}, func(youtube.Comment) error {
		t.Fatal("should not emit")
		return nil
	})
	require.ErrorContains(t, err, "api is down")
}

func TestCollectPropagatesEmitError(t *testing.T) {
	src := &fakeSource{pages: map[string]youtube.Page{
		"": {Threads: []youtube.Thread{top("c1")}},
	}}

	sentinel := fmt.Errorf("sink full")
	err := Collect(context.Background(), src, "vid00000001", Options{MaxComments: 10}, func(youtube.Comment) error {
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
}

func TestCollectRejectsNonPositiveCap(t *testing.T) {
	err := Collect(context.Background(), &fakeSource{}, "vid00000001", Options{}, func(youtube.Comment) error {
		return nil
	})
	require.Error(t, err)
}
