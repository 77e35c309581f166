package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"opinionlens-backend/lib/textutil"
)

// CleanResult reports what the cleaning pass did.
type CleanResult struct {
	Kept    int
	Dropped int // rows whose cleaned text came out empty
}

// CleanFile reads a scraped comment CSV, rewrites the text column through
// textutil.CleanComment, drops rows that clean down to nothing, and writes
// the result to outPath with the header preserved.
func CleanFile(inPath, outPath string) (CleanResult, error) {
	header, rows, err := readCSV(inPath)
	if err != nil {
		return CleanResult{}, err
	}
	textCol := -1
	for i, name := range header {
		if name == "text" {
			textCol = i
			break
		}
	}
	if textCol < 0 {
		return CleanResult{}, fmt.Errorf("%s has no text column", inPath)
	}

	var res CleanResult
	cleaned := make([][]string, 0, len(rows))
	for _, row := range rows {
		if textCol >= len(row) {
			res.Dropped++
			continue
		}
		text := textutil.CleanComment(row[textCol])
		if text == "" {
			res.Dropped++
			continue
		}
		row[textCol] = text
		cleaned = append(cleaned, row)
		res.Kept++
	}

	return res, writeCSV(outPath, header, cleaned)
}

// SplitFile shuffles the rows of a CSV deterministically by seed and
// splits them into train and test files, with testFraction of the rows
// (rounded down) landing in the test file.
func SplitFile(inPath, trainPath, testPath string, testFraction float64, seed int64) (train, test int, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return 0, 0, fmt.Errorf("test fraction must be in (0, 1), got %v", testFraction)
	}

	header, rows, err := readCSV(inPath)
	if err != nil {
		return 0, 0, err
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})

	testN := int(float64(len(rows)) * testFraction)
	if err := writeCSV(testPath, header, rows[:testN]); err != nil {
		return 0, 0, err
	}
	if err := writeCSV(trainPath, header, rows[testN:]); err != nil {
		return 0, 0, err
	}
	return len(rows) - testN, testN, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
