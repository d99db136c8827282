// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a PDF file and returns its cleaned plain text. An
// error is returned when the file is not a parseable PDF or yields no
// text at all.
func ExtractText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting PDF text: %w", err)
	}
	raw, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("reading PDF text: %w", err)
	}

	text := cleanText(string(raw))
	if text == "" {
		return "", fmt.Errorf("no text extracted from %s", path)
	}
	return text, nil
}

// cleanText normalizes extracted PDF text: runs of spaces and tabs
// collapse to a single space, and lines of one character or less (page
// numbers, stray glyphs) are dropped.
func cleanText(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if len(line) <= 1 {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
