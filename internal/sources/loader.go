package sources

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Source describes where a document comes from.
type Source struct {
	// Name identifies the document in evidence; defaults to the file name.
	Name       string
	Kind       string
	Visibility Visibility
	// Value is inline text provided via flags or prompts.
	Value string
	// File points to a file with the document text. When set it takes
	// precedence over Value.
	File string
}

// LoadError is returned when a source cannot be turned into a document.
type LoadError struct {
	Name  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Name, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

var readers = map[string]func([]byte) (string, error){
	".txt":  plainText,
	".md":   plainText,
	".html": htmlText,
	".htm":  htmlText,
}

// Load resolves a source into a document. The returned flag is false when
// the resolved text is blank; blank documents carry no evidence and callers
// should skip them.
func Load(src Source) (Document, bool, error) {
	name := strings.TrimSpace(src.Name)
	file := strings.TrimSpace(src.File)
	if name == "" {
		name = filepath.Base(file)
	}
	if name == "" || name == "." {
		name = "document"
	}

	text := src.Value
	origin := OriginManual
	if file != "" {
		suffix := strings.ToLower(filepath.Ext(file))
		read, ok := readers[suffix]
		if !ok {
			return Document{}, false, &LoadError{Name: name, Cause: fmt.Errorf("unsupported file type %q", suffix)}
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return Document{}, false, &LoadError{Name: name, Cause: err}
		}

		text, err = read(data)
		if err != nil {
			return Document{}, false, &LoadError{Name: name, Cause: err}
		}
		origin = OriginUpload
	}

	doc, ok := FromText(name, text, src.Kind, src.Visibility)
	if !ok {
		return Document{}, false, nil
	}
	doc.Origin = origin

	if err := doc.Validate(); err != nil {
		return Document{}, false, &LoadError{Name: name, Cause: err}
	}

	return doc, true, nil
}

// SupportedSuffix reports whether Load can read files with the extension.
func SupportedSuffix(path string) bool {
	_, ok := readers[strings.ToLower(filepath.Ext(path))]
	return ok
}

func plainText(data []byte) (string, error) {
	return string(data), nil
}

func htmlText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	var lines []string
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		for _, line := range strings.Split(s.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	})

	return strings.Join(lines, "\n"), nil
}
