package skills

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/skillsense/internal/sources"
)

// SignalKind tells how a skill was detected.
type SignalKind string

const (
	KindExplicit SignalKind = "explicit"
	KindImplicit SignalKind = "implicit"

	snippetWindow = 90
)

// Occurrence is a single detection of a skill inside one document.
type Occurrence struct {
	Skill    string
	Category string
	Kind     SignalKind
	Source   string
	Snippet  string
}

type termMatcher struct {
	term     string
	category string
	re       *regexp.Regexp
	// checkStart/checkEnd are set when the term begins/ends with a word
	// character, so a neighbouring word character means a partial word.
	checkStart bool
	checkEnd   bool
}

type implicitMatcher struct {
	name     string
	category string
	patterns []implicitPattern
}

// implicitPattern records whether the pattern is anchored with \b on either
// side. RE2 only treats ASCII as word characters, so the anchors are
// re-checked against letters and digits of any script.
type implicitPattern struct {
	re         *regexp.Regexp
	checkStart bool
	checkEnd   bool
}

// Extractor scans documents against a compiled lexicon. It holds no mutable
// state and can be shared between goroutines.
type Extractor struct {
	terms    []termMatcher
	implicit []implicitMatcher
}

// NewExtractor compiles the lexicon into matchers.
func NewExtractor(lex *Lexicon) (*Extractor, error) {
	if lex == nil {
		return nil, fmt.Errorf("lexicon is required")
	}

	e := &Extractor{}
	for _, term := range lex.Terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		words := strings.Fields(term)
		quoted := make([]string, 0, len(words))
		for _, w := range words {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}

		re, err := regexp.Compile(`(?i)` + strings.Join(quoted, `\s+`))
		if err != nil {
			return nil, fmt.Errorf("compiling term %q: %w", term, err)
		}

		first, _ := utf8.DecodeRuneInString(term)
		last, _ := utf8.DecodeLastRuneInString(term)
		e.terms = append(e.terms, termMatcher{
			term:       term,
			category:   lex.CategoryOf(term),
			re:         re,
			checkStart: isWordRune(first),
			checkEnd:   isWordRune(last),
		})
	}

	for _, skill := range lex.Implicit {
		category := strings.TrimSpace(skill.Category)
		if category == "" {
			category = DefaultImplicitCategory
		}

		m := implicitMatcher{name: skill.Name, category: category}
		for _, pattern := range skill.Patterns {
			re, err := regexp.Compile(`(?i)` + pattern)
			if err != nil {
				return nil, fmt.Errorf("compiling pattern %q of %q: %w", pattern, skill.Name, err)
			}
			m.patterns = append(m.patterns, implicitPattern{
				re:         re,
				checkStart: strings.HasPrefix(pattern, `\b`),
				checkEnd:   strings.HasSuffix(pattern, `\b`) && !strings.HasSuffix(pattern, `\\b`),
			})
		}
		e.implicit = append(e.implicit, m)
	}

	return e, nil
}

// Extract returns every occurrence found in the document. Explicit terms are
// reported first in lexicon order, then implicit skills; within one matcher
// occurrences follow their position in the text.
func (e *Extractor) Extract(doc sources.Document) []Occurrence {
	text := doc.Text
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []Occurrence
	for _, m := range e.terms {
		for _, loc := range m.re.FindAllStringIndex(text, -1) {
			if !m.isWholeWord(text, loc[0], loc[1]) {
				continue
			}
			out = append(out, Occurrence{
				Skill:    m.term,
				Category: m.category,
				Kind:     KindExplicit,
				Source:   doc.Name,
				Snippet:  snippet(text, loc[0], loc[1]),
			})
		}
	}

	for _, m := range e.implicit {
		for _, p := range m.patterns {
			for _, loc := range p.re.FindAllStringIndex(text, -1) {
				if !wordBounded(text, loc[0], loc[1], p.checkStart, p.checkEnd) {
					continue
				}
				out = append(out, Occurrence{
					Skill:    m.name,
					Category: m.category,
					Kind:     KindImplicit,
					Source:   doc.Name,
					Snippet:  snippet(text, loc[0], loc[1]),
				})
			}
		}
	}

	return out
}

func (m termMatcher) isWholeWord(text string, start, end int) bool {
	return wordBounded(text, start, end, m.checkStart, m.checkEnd)
}

// wordBounded reports whether the runes around [start, end) are not word
// runes on the checked sides.
func wordBounded(text string, start, end int, checkStart, checkEnd bool) bool {
	if checkStart && start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if checkEnd && end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// snippet cuts a window of snippetWindow runes on each side of [start, end)
// with newlines flattened.
func snippet(text string, start, end int) string {
	left := start
	for i := 0; i < snippetWindow && left > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:left])
		left -= size
	}

	right := end
	for i := 0; i < snippetWindow && right < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[right:])
		right += size
	}

	s := strings.ReplaceAll(text[left:right], "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
