package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
}

func readFixture(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCleanFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.csv")
	out := filepath.Join(dir, "clean.csv")

	writeFixture(t, in, [][]string{
		{"comment_id", "video_id", "text"},
		{"c1", "vid00000001", "Great Video!! https://youtu.be/x 10/10"},
		{"c2", "vid00000001", "123456"},
		{"c3", "vid00000001", "thanks @author"},
	})

	res, err := CleanFile(in, out)
	require.NoError(t, err)
	require.Equal(t, CleanResult{Kept: 2, Dropped: 1}, res)

	want := [][]string{
		{"comment_id", "video_id", "text"},
		{"c1", "vid00000001", "great video"},
		{"c3", "vid00000001", "thanks"},
	}
	if diff := cmp.Diff(want, readFixture(t, out)); diff != "" {
		t.Fatalf("cleaned csv mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanFileRequiresTextColumn(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.csv")
	writeFixture(t, in, [][]string{{"comment_id"}, {"c1"}})

	_, err := CleanFile(in, filepath.Join(dir, "clean.csv"))
	require.ErrorContains(t, err, "no text column")
}

func TestSplitFileDeterministic(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "clean.csv")

	rows := [][]string{{"comment_id", "text"}}
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10"} {
		rows = append(rows, []string{id, "text " + id})
	}
	writeFixture(t, in, rows)

	trainPath := filepath.Join(dir, "train.csv")
	testPath := filepath.Join(dir, "test.csv")
	trainN, testN, err := SplitFile(in, trainPath, testPath, 0.2, 42)
	require.NoError(t, err)
	require.Equal(t, 8, trainN)
	require.Equal(t, 2, testN)

	train := readFixture(t, trainPath)
	test := readFixture(t, testPath)
	require.Len(t, train, 9)
	require.Len(t, test, 3)

	// every input row lands in exactly one split
	var got []string
	for _, r := range append(train[1:], test[1:]...) {
		got = append(got, r[0])
	}
	sort.Strings(got)
	require.Equal(t, []string{"c1", "c10", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9"}, got)

	// same seed, same split
	train2Path := filepath.Join(dir, "train2.csv")
	test2Path := filepath.Join(dir, "test2.csv")
	_, _, err = SplitFile(in, train2Path, test2Path, 0.2, 42)
	require.NoError(t, err)
	require.Equal(t, train, readFixture(t, train2Path))
	require.Equal(t, test, readFixture(t, test2Path))
}

func TestSplitFileRejectsBadFraction(t *testing.T) {
	_, _, err := SplitFile("in.csv", "a.csv", "b.csv", 1.5, 0)
	require.Error(t, err)
	_, _, err = SplitFile("in.csv", "a.csv", "b.csv", 0, 0)
	require.Error(t, err)
}
