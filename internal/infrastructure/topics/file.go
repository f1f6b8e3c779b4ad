package topics

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

// File reads topics from a CSV file: every non-empty cell is a topic and the
// first row is treated as a header. The list is shuffled on every read.
type File struct {
	path    string
	shuffle func(n int, swap func(i, j int))
}

var _ ports.TopicSource = (*File)(nil)

// NewFile builds a file topic source.
func NewFile(path string) *File {
	return &File{path: path, shuffle: rand.Shuffle}
}

// Topics returns the shuffled topics, or domain.ErrNoTopics for an empty file.
func (f *File) Topics(_ context.Context) ([]string, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open topics file: %w", err)
	}
	defer fh.Close()

	topics, err := parse(fh)
	if err != nil {
		return nil, fmt.Errorf("read topics file %s: %w", f.path, err)
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("%s: %w", f.path, domain.ErrNoTopics)
	}

	if f.shuffle != nil {
		f.shuffle(len(topics), func(i, j int) { topics[i], topics[j] = topics[j], topics[i] })
	}
	return topics, nil
}

func parse(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		topics []string
		header = true
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		for _, cell := range record {
			if cell = strings.TrimSpace(cell); cell != "" && !strings.EqualFold(cell, "nan") {
				topics = append(topics, cell)
			}
		}
	}
	return topics, nil
}
