package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Origin of a learning pack.
type PackSource string

const (
	SourceGeekNews PackSource = "geeknews"
	SourceDocs     PackSource = "docs"
	SourceNotion   PackSource = "notion"
)

// Valid reports whether s is one of the known pack origins.
func (s PackSource) Valid() bool {
	switch s {
	case SourceGeekNews, SourceDocs, SourceNotion:
		return true
	}
	return false
}

// Represents a recommendable unit of learning content.
// EstimatedMinutes is the time cost of consuming the pack and must be positive;
// packs that fail Validate never enter selection.
type LearningPack struct {
	ID               string         `json:"id" yaml:"id"`
	Source           PackSource     `json:"source" yaml:"source"`
	SourceLabel      string         `json:"sourceLabel" yaml:"sourceLabel"`
	Title            string         `json:"title" yaml:"title"`
	Summary          string         `json:"summary" yaml:"summary"`
	EstimatedMinutes int            `json:"estimatedMinutes" yaml:"estimatedMinutes"`
	Tags             []string       `json:"tags" yaml:"tags"`
	URL              string         `json:"url,omitempty" yaml:"url,omitempty"`
	Content          []ContentBlock `json:"content,omitempty" yaml:"-"`
	LastModified     *time.Time     `json:"lastModified,omitempty" yaml:"-"`
}

// Validate checks the invariants a pack must hold before it can be selected.
func (p LearningPack) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("validate pack: id must be non-empty")
	}
	if !p.Source.Valid() {
		return fmt.Errorf("validate pack %q: unknown source %q", p.ID, p.Source)
	}
	if p.EstimatedMinutes <= 0 {
		return fmt.Errorf("validate pack %q: estimatedMinutes must be positive (got %d)", p.ID, p.EstimatedMinutes)
	}
	return nil
}

// HasTag reports whether the pack carries the given tag.
func (p LearningPack) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy whose slices do not alias the receiver's.
func (p LearningPack) Clone() LearningPack {
	c := p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	if p.Content != nil {
		c.Content = make([]ContentBlock, len(p.Content))
		for i, b := range p.Content {
			c.Content[i] = b
			if b.Items != nil {
				c.Content[i].Items = append([]string(nil), b.Items...)
			}
		}
	}
	if p.LastModified != nil {
		t := *p.LastModified
		c.LastModified = &t
	}
	return c
}

// UniqueTags drops empty and repeated tags, keeping first-seen order.
func UniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

type ContentBlockType string

const (
	BlockSection ContentBlockType = "section"
	BlockCode    ContentBlockType = "code"
)

// A rendered chunk of pack content: either a titled list of items
// or a titled code sample.
type ContentBlock struct {
	Type    ContentBlockType `json:"type"`
	Title   string           `json:"title"`
	Items   []string         `json:"items,omitempty"`
	Content string           `json:"content,omitempty"`
}
