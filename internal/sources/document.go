// Package sources holds the evidence documents fed into skill profiles.
package sources

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Visibility controls whether a document may appear in shareable output.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"

	OriginManual = "manual"
	OriginUpload = "upload"
)

var validate = validator.New()

// Document is a piece of evidence used to build a skill profile.
type Document struct {
	Name       string     `json:"name" validate:"required"`
	Kind       string     `json:"kind"`
	Text       string     `json:"text"`
	Visibility Visibility `json:"visibility" validate:"required,oneof=public private"`
	Origin     string     `json:"origin"`
}

// Validate checks the document shape.
func (d Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("document %q: %w", d.Name, err)
	}
	return nil
}

// WordCount returns the number of whitespace separated words.
func (d Document) WordCount() int {
	return len(strings.Fields(d.Text))
}

// ParseVisibility maps free text to a visibility, defaulting to private.
func ParseVisibility(s string) Visibility {
	if strings.EqualFold(strings.TrimSpace(s), string(Public)) {
		return Public
	}
	return Private
}

// FromText builds a manual document. It reports false when the text is blank.
func FromText(name, text, kind string, visibility Visibility) (Document, bool) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return Document{}, false
	}
	if visibility == "" {
		visibility = Private
	}

	return Document{
		Name:       name,
		Kind:       kind,
		Text:       cleaned,
		Visibility: visibility,
		Origin:     OriginManual,
	}, true
}

// UniqueNames returns the documents with repeated names made distinct by a
// " (2)", " (3)", ... suffix. The first document with a name keeps it.
func UniqueNames(docs []Document) []Document {
	taken := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		taken[d.Name] = struct{}{}
	}

	used := make(map[string]struct{}, len(docs))
	out := make([]Document, len(docs))
	for i, d := range docs {
		if _, dup := used[d.Name]; dup {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s (%d)", d.Name, n)
				if _, ok := taken[candidate]; !ok {
					d.Name = candidate
					taken[candidate] = struct{}{}
					break
				}
			}
		}
		used[d.Name] = struct{}{}
		out[i] = d
	}
	return out
}
