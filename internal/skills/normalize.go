package skills

import (
	"regexp"
	"strings"
)

// reSeparators matches every run of characters that is not a letter, a digit,
// '+' or '#'. The two symbols are kept so "c++" and "c#" stay distinct from "c".
var reSeparators = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)

// Normalize folds a skill name into its mapping key: lower case, every
// punctuation or whitespace run collapsed to one space, ends trimmed.
// "CI/CD", "ci-cd" and " Ci  CD " all become "ci cd".
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = reSeparators.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
