// Package dataset parses the bundled question sheet into flat seed records.
// Pure function: bytes or file paths in, domain structs out. No storage dependencies.
package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

//go:embed default.json
var defaultSheet []byte

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Dataset is a parsed sheet.
type Dataset struct {
	Name    string
	Slug    string
	Records []domain.SeedRecord
	// Skipped counts rows dropped for a missing topic or title.
	Skipped int
}

type document struct {
	Data struct {
		Sheet     sheet         `json:"sheet"     yaml:"sheet"`
		Questions []rawQuestion `json:"questions" yaml:"questions"`
	} `json:"data" yaml:"data"`
}

type sheet struct {
	Name        string `json:"name"        yaml:"name"`
	Slug        string `json:"slug"        yaml:"slug"`
	Description string `json:"description" yaml:"description"`
}

type rawQuestion struct {
	QuestionID struct {
		ID         int64  `json:"id"         yaml:"id"`
		ProblemURL string `json:"problemUrl" yaml:"problemUrl"`
	} `json:"questionId" yaml:"questionId"`
	Topic string `json:"topic" yaml:"topic"`
	Title string `json:"title" yaml:"title"`
}

// Parse decodes a sheet document. Rows without a topic or title are skipped
// and counted; record order follows document order.
func Parse(r io.Reader, format Format) (*Dataset, error) {
	var doc document

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	ds := &Dataset{
		Name:    doc.Data.Sheet.Name,
		Slug:    doc.Data.Sheet.Slug,
		Records: make([]domain.SeedRecord, 0, len(doc.Data.Questions)),
	}
	for _, q := range doc.Data.Questions {
		if strings.TrimSpace(q.Topic) == "" || strings.TrimSpace(q.Title) == "" {
			ds.Skipped++
			continue
		}
		ds.Records = append(ds.Records, domain.SeedRecord{
			SourceID: q.QuestionID.ID,
			Topic:    q.Topic,
			Title:    q.Title,
			URL:      q.QuestionID.ProblemURL,
		})
	}

	return ds, nil
}

// ParseFile reads a sheet from disk; the format follows the file extension
// (.yaml/.yml, everything else is treated as JSON).
func ParseFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ds, nil
}

// Default returns the sheet compiled into the binary.
func Default() (*Dataset, error) {
	ds, err := Parse(bytes.NewReader(defaultSheet), FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("parse embedded dataset: %w", err)
	}
	return ds, nil
}

// Source loads a dataset from Path, or the embedded sheet when Path is empty.
type Source struct {
	Path string
}

// Load implements the seed loader's dataset dependency.
func (s Source) Load(_ context.Context) (*Dataset, error) {
	if s.Path == "" {
		return Default()
	}
	return ParseFile(s.Path)
}

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
