package checkpoint

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store tracks which videos have been fully processed, successfully or
// abandoned after a fatal failure, in an append-only CSV. Duplicate rows
// in the backing file are tolerated; the in-memory view is a set.
type Store struct {
	file *os.File
	w    *csv.Writer
	done map[string]struct{}
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	done, hasHeader, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint %s: %w", path, err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	s := &Store{
		file: file,
		w:    csv.NewWriter(file),
		done: done,
	}
	if !hasHeader {
		if err := s.w.Write([]string{"video_id"}); err != nil {
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

// CountDone reports how many videos the file records as processed without
// creating the file or its directory. A missing file counts as zero.
func CountDone(path string) (int, error) {
	done, _, err := load(path)
	if err != nil {
		return 0, fmt.Errorf("load checkpoint %s: %w", path, err)
	}
	return len(done), nil
}

func load(path string) (map[string]struct{}, bool, error) {
	done := map[string]struct{}{}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return done, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return done, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(header) == 0 || header[0] != "video_id" {
		return nil, false, fmt.Errorf("unexpected checkpoint header %v", header)
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false, err
		}
		if len(row) > 0 && row[0] != "" {
			done[row[0]] = struct{}{}
		}
	}
	return done, true, nil
}

func (s *Store) Done(videoID string) bool {
	_, ok := s.done[videoID]
	return ok
}

// MarkDone durably records the video as processed. Marking the same video
// twice is harmless.
func (s *Store) MarkDone(videoID string) error {
	if s.Done(videoID) {
		return nil
	}
	if err := s.w.Write([]string{videoID}); err != nil {
		return err
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return err
	}
	s.done[videoID] = struct{}{}
	return nil
}

func (s *Store) Count() int {
	return len(s.done)
}

func (s *Store) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if closeErr := s.file.Close(); err == nil {
		err = closeErr
	}
	return err
}
