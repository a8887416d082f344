package sources

import (
	"fmt"
	"math"
	"strings"
)

// Description gives quick stats about loaded documents.
type Description struct {
	Count      int                `json:"count"`
	ByKind     map[string]int     `json:"by_kind"`
	Visibility map[Visibility]int `json:"visibility"`
	TotalWords int                `json:"total_words"`
	AvgWords   float64            `json:"avg_words"`
}

// Describe summarizes the documents.
func Describe(docs []Document) Description {
	d := Description{
		Count:      len(docs),
		ByKind:     make(map[string]int),
		Visibility: make(map[Visibility]int),
	}

	for _, doc := range docs {
		d.ByKind[doc.Kind]++
		d.Visibility[doc.Visibility]++
		d.TotalWords += doc.WordCount()
	}

	if d.Count > 0 {
		d.AvgWords = math.Round(float64(d.TotalWords)/float64(d.Count)*10) / 10
	}

	return d
}

// MergeText joins documents into one blob with a "[name | kind]" header per
// section. When visibility is not empty only matching documents are used.
func MergeText(docs []Document, visibility Visibility) string {
	sections := make([]string, 0, len(docs))
	for _, doc := range docs {
		if visibility != "" && doc.Visibility != visibility {
			continue
		}
		text := strings.TrimSpace(doc.Text)
		if text == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("[%s | %s]\n%s", doc.Name, doc.Kind, text))
	}
	return strings.Join(sections, "\n\n")
}
