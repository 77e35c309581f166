package watcher

import (
	"context"
	"testing"

	"opinionlens-backend/lib/youtube"

	"github.com/stretchr/testify/require"
)

type fakeRecent struct {
	pages map[string]youtube.Page
	calls int
}

func (f *fakeRecent) RecentCommentPage(_ context.Context, _ string, pageToken string) (youtube.Page, error) {
	f.calls++
	return f.pages[pageToken], nil
}

func at(id, published string) youtube.Thread {
	return youtube.Thread{Top: youtube.Comment{ID: id, PublishedAt: published}}
}

func TestPollNewerStopsAtFloor(t *testing.T) {
	src := &fakeRecent{pages: map[string]youtube.Page{
		"": {
			Threads: []youtube.Thread{
				at("c3", "2024-05-01T12:00:00Z"),
				at("c2", "2024-05-01T11:00:00Z"),
				at("c1", "2024-05-01T10:00:00Z"),
			},
			NextPageToken: "p2",
		},
	}}

	got, err := PollNewer(context.Background(), src, "vid00000001", "2024-05-01T10:30:00Z", 100)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "c3", got[0].ID)
	require.Equal(t, "c2", got[1].ID)
	// stopped at the floor, no second page fetched
	require.Equal(t, 1, src.calls)
}

func TestPollNewerWalksPagesUntilTokenRunsOut(t *testing.T) {
	src := &fakeRecent{pages: map[string]youtube.Page{
		"":   {Threads: []youtube.Thread{at("c2", "2024-05-01T11:00:00Z")}, NextPageToken: "p2"},
		"p2": {Threads: []youtube.Thread{at("c1", "2024-05-01T10:00:00Z")}},
	}}

	got, err := PollNewer(context.Background(), src, "vid00000001", "2024-01-01T00:00:00Z", 100)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 2, src.calls)
}

func TestPollNewerHonorsMax(t *testing.T) {
	src := &fakeRecent{pages: map[string]youtube.Page{
		"": {Threads: []youtube.Thread{
			at("c3", "2024-05-01T12:00:00Z"),
			at("c2", "2024-05-01T11:00:00Z"),
		}, NextPageToken: "p2"},
	}}

	got, err := PollNewer(context.Background(), src, "vid00000001", "", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, src.calls)
}

func TestCeiling(t *testing.T) {
	floor := "2024-05-01T10:00:00Z"
	require.Equal(t, floor, Ceiling(nil, floor))

	comments := []youtube.Comment{
		{PublishedAt: "2024-05-01T11:00:00Z"},
		{PublishedAt: "2024-05-01T12:00:00Z"},
		{PublishedAt: "2024-05-01T09:00:00Z"},
	}
	require.Equal(t, "2024-05-01T12:00:00Z", Ceiling(comments, floor))
}
