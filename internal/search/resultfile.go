// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperfinder/pkg/types"
)

// ResultFile is the on-disk representation of a search run. A run can be
// saved and reloaded later (for example to summarize without re-querying
// the API).
type ResultFile struct {
	Query     ResultQuery       `yaml:"query"`
	Results   []types.Paper     `yaml:"results"`
	Summaries map[string]string `yaml:"summaries,omitempty"`
	Run       RunSummary        `yaml:"run"`
}

// ResultQuery stores the query parameters in a serializable form.
type ResultQuery struct {
	Text       string `yaml:"text"`
	Mode       string `yaml:"mode"`
	Category   string `yaml:"category,omitempty"`
	DateFrom   string `yaml:"date_from,omitempty"`
	DateTo     string `yaml:"date_to,omitempty"`
	Expression string `yaml:"expression"`
}

// RunSummary stores result statistics and a timestamp.
type RunSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteResultFile saves a search run and any summaries to a YAML file.
func WriteResultFile(path string, q Query, out Output, summaries map[string]string) error {
	rf := ResultFile{
		Query: ResultQuery{
			Text:       q.Text,
			Mode:       q.Mode.String(),
			Category:   q.Category,
			Expression: out.Expression,
		},
		Results:   out.Papers,
		Summaries: summaries,
		Run: RunSummary{
			Total:     len(out.Papers),
			Timestamp: time.Now(),
		},
	}

	if !q.DateFrom.IsZero() {
		rf.Query.DateFrom = q.DateFrom.Format(dateFmt)
	}
	if !q.DateTo.IsZero() {
		rf.Query.DateTo = q.DateTo.Format(dateFmt)
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved search run from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
