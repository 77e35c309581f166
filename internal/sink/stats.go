package sink

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
)

// Stats summarizes an output file for reporting.
type Stats struct {
	Rows     int
	Replies  int
	Videos   int
	Comments int // distinct comment ids
}

func ReadStats(path string) (Stats, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, err
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var stats Stats
	commentIds := map[string]struct{}{}
	videoIds := map[string]struct{}{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Stats{}, err
		}
		stats.Rows++
		if field(row, "is_reply") == "true" {
			stats.Replies++
		}
		if id := field(row, "comment_id"); id != "" {
			commentIds[id] = struct{}{}
		}
		if id := field(row, "video_id"); id != "" {
			videoIds[id] = struct{}{}
		}
	}
	stats.Comments = len(commentIds)
	stats.Videos = len(videoIds)
	return stats, nil
}
