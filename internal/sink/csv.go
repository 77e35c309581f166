package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"opinionlens-backend/lib/youtube"
)

// fixed column order of the output file. consumers depend on it.
var Columns = []string{
	"comment_id", "video_id", "parent_id", "is_reply", "author",
	"text", "likes", "published_at", "updated_at", "reply_count",
}

// CSVSink appends comment records to a CSV file, never writing the same
// comment id twice across the lifetime of the file. The seen-ID set is
// seeded from the existing file on open, which is what makes interrupted
// runs resumable without duplicate rows.
type CSVSink struct {
	file *os.File
	w    *csv.Writer
	seen map[string]struct{}
}

func OpenCSV(path string) (*CSVSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	seen, hasHeader, err := scanExisting(path)
	if err != nil {
		return nil, fmt.Errorf("scan existing output %s: %w", path, err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	s := &CSVSink{
		file: file,
		w:    csv.NewWriter(file),
		seen: seen,
	}
	if !hasHeader {
		if err := s.w.Write(Columns); err != nil {
			file.Close()
			return nil, err
		}
		s.w.Flush()
		if err := s.w.Error(); err != nil {
			file.Close()
			return nil, err
		}
	}
	return s, nil
}

// seeds the dedup set from a previous run's output. returns whether the
// file already carries a header.
func scanExisting(path string) (map[string]struct{}, bool, error) {
	seen := map[string]struct{}{}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return seen, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return seen, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	idCol := -1
	for i, name := range header {
		if name == "comment_id" {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return nil, false, fmt.Errorf("existing file has no comment_id column")
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false, err
		}
		if idCol < len(row) && row[idCol] != "" {
			seen[row[idCol]] = struct{}{}
		}
	}
	return seen, true, nil
}

// FilterNew returns the records whose ids have not been seen before, in
// input order, and marks them seen.
func (s *CSVSink) FilterNew(batch []youtube.Comment) []youtube.Comment {
	var fresh []youtube.Comment
	for _, c := range batch {
		if c.ID == "" {
			continue
		}
		if _, dup := s.seen[c.ID]; dup {
			continue
		}
		s.seen[c.ID] = struct{}{}
		fresh = append(fresh, c)
	}
	return fresh
}

// Append writes the records and flushes them to the file. It does not
// dedup; callers are expected to pass batches through FilterNew first.
func (s *CSVSink) Append(batch []youtube.Comment) error {
	for _, c := range batch {
		if err := s.w.Write(record(c)); err != nil {
			return err
		}
	}
	s.w.Flush()
	return s.w.Error()
}

// SeenCount reports the size of the dedup set, including ids seeded from
// previous runs.
func (s *CSVSink) SeenCount() int {
	return len(s.seen)
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if closeErr := s.file.Close(); err == nil {
		err = closeErr
	}
	return err
}

func record(c youtube.Comment) []string {
	return []string{
		c.ID,
		c.VideoID,
		c.ParentID,
		strconv.FormatBool(c.IsReply),
		c.Author,
		c.Text,
		strconv.FormatInt(c.Likes, 10),
		c.PublishedAt,
		c.UpdatedAt,
		strconv.FormatInt(c.ReplyCount, 10),
	}
}
