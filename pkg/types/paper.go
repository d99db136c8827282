// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paperfinder pipeline.
package types

import "time"

// Paper represents a single academic paper returned by a search backend.
// The semantic ranker reads Title, Abstract, Categories, and Published;
// it never mutates a Paper.
type Paper struct {
	// ArxivID is the canonical arXiv identifier (e.g. "2301.07041").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract with newlines collapsed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PDFURL is the direct download URL for the paper PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Published is the publication or preprint date.
	Published time.Time `json:"published" yaml:"published"`

	// Categories lists the arXiv taxonomy codes (e.g. "cs.AI", "cs.LG").
	Categories []string `json:"categories" yaml:"categories"`
}
