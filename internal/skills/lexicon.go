// Package skills turns free-text evidence into confidence-scored skill signals.
package skills

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	CategoryTechnical  = "Technical Foundation"
	CategoryData       = "Data & AI"
	CategoryDelivery   = "Product & Delivery"
	CategoryLeadership = "Leadership & Impact"

	// DefaultExplicitCategory is used for lexicon terms missing from the framework.
	DefaultExplicitCategory = CategoryTechnical
	// DefaultImplicitCategory is used for implicit skills without a category.
	DefaultImplicitCategory = CategoryLeadership
)

// FrameworkCategory is one row of the formal skill taxonomy.
type FrameworkCategory struct {
	Name   string   `mapstructure:"name"`
	Skills []string `mapstructure:"skills"`
}

// ImplicitSkill is a skill inferred from behavioural phrasing.
type ImplicitSkill struct {
	Name     string   `mapstructure:"name"`
	Category string   `mapstructure:"category"`
	Patterns []string `mapstructure:"patterns"`
}

// Lexicon is the static vocabulary used by the extractor. It must not be
// modified once handed to a Builder; builders share it across goroutines.
type Lexicon struct {
	Terms     []string            `mapstructure:"terms"`
	Framework []FrameworkCategory `mapstructure:"framework"`
	Implicit  []ImplicitSkill     `mapstructure:"implicit"`

	frameworkLookup map[string]string
}

// DefaultLexicon returns the built-in vocabulary.
func DefaultLexicon() *Lexicon {
	lex := &Lexicon{
		// Terms that double as everyday English words are only listed in a
		// qualified form, e.g. "rest api" rather than "rest".
		Terms: []string{
			"python", "java", "javascript", "typescript", "c++", "c#", "golang", "rust",
			"ruby", "php", "scala", "kotlin", "sql", "nosql", "postgresql",
			"mysql", "mongodb", "redis", "kafka", "apache spark", "hadoop", "airflow",
			"cloud", "aws", "azure", "gcp", "docker", "kubernetes", "terraform",
			"ansible", "linux", "ci/cd", "git", "react", "angular", "node.js",
			"graphql", "rest api", "microservices", "cybersecurity",
			"data analysis", "data science", "machine learning", "deep learning",
			"computer vision", "nlp", "mlops", "pandas", "numpy", "tensorflow",
			"pytorch", "xgboost", "tableau", "power bi", "microsoft excel",
			"project management", "agile", "scrum", "kanban", "product management",
			"stakeholder management", "roadmapping", "testing", "qa", "devops",
			"leadership", "mentorship", "communication", "strategic planning",
			"problem solving", "innovation", "change management",
		},
		Framework: []FrameworkCategory{
			{Name: CategoryTechnical, Skills: []string{
				"python", "java", "javascript", "typescript", "c++", "c#", "sql",
				"cloud", "aws", "azure", "gcp", "docker", "kubernetes", "ci/cd", "git",
			}},
			{Name: CategoryData, Skills: []string{
				"data analysis", "data science", "machine learning", "deep learning",
				"computer vision", "nlp", "mlops", "pandas", "numpy", "tensorflow",
				"pytorch", "xgboost",
			}},
			{Name: CategoryDelivery, Skills: []string{
				"project management", "agile", "scrum", "kanban", "product management",
				"stakeholder management", "roadmapping", "testing", "qa", "devops",
			}},
			{Name: CategoryLeadership, Skills: []string{
				"leadership", "mentorship", "communication", "strategic planning",
				"problem solving", "innovation", "change management",
			}},
		},
		Implicit: []ImplicitSkill{
			{Name: "leadership", Category: CategoryLeadership, Patterns: []string{`\bled\b`, `\bmanaged\b`, `\bhead(ed)?\b`, `\bdirected\b`}},
			{Name: "mentorship", Category: CategoryLeadership, Patterns: []string{`\bmentored\b`, `\bcoached\b`, `\btrained\b`}},
			{Name: "stakeholder management", Category: CategoryDelivery, Patterns: []string{`\bstakeholder(s)?\b`, `\baligned\b.*\bteam\b`}},
			{Name: "communication", Category: CategoryLeadership, Patterns: []string{`\bpresented\b`, `\bfacilitated\b`, `\bworkshop\b`}},
			{Name: "strategic planning", Category: CategoryLeadership, Patterns: []string{`\broadmap\b`, `\bstrategy\b`, `\bvision\b`}},
			{Name: "problem solving", Category: CategoryTechnical, Patterns: []string{`\broot cause\b`, `\btroubleshoot(ed)?\b`, `\bdebugged\b`}},
			{Name: "continuous improvement", Category: CategoryDelivery, Patterns: []string{`\bretrospective\b`, `\bcontinuous improvement\b`, `\bkaizen\b`}},
			{Name: "governance", Category: CategoryDelivery, Patterns: []string{`\baudit(ed)?\b`, `\bcompliance\b`, `\brisk\b`}},
			{Name: "innovation", Category: CategoryLeadership, Patterns: []string{`\bprototype(d)?\b`, `\bexperiments?\b`, `\bhackathon\b`}},
		},
	}
	lex.index()
	return lex
}

// LoadLexicon reads a lexicon from a yaml, json or toml file. Sections that
// are absent in the file keep their built-in defaults.
func LoadLexicon(path string) (*Lexicon, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultLexicon(), nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("lexicon file %q: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading lexicon file %q: %w", path, err)
	}

	var decoded Lexicon
	if err := mapstructure.Decode(v.AllSettings(), &decoded); err != nil {
		return nil, fmt.Errorf("decoding lexicon file %q: %w", path, err)
	}

	lex := DefaultLexicon()
	if len(decoded.Terms) > 0 {
		lex.Terms = decoded.Terms
	}
	if len(decoded.Framework) > 0 {
		lex.Framework = decoded.Framework
	}
	if len(decoded.Implicit) > 0 {
		lex.Implicit = decoded.Implicit
	}

	if err := lex.validate(); err != nil {
		return nil, fmt.Errorf("lexicon file %q: %w", path, err)
	}
	lex.index()

	return lex, nil
}

// CategoryOf returns the framework category of an explicit term, falling
// back to DefaultExplicitCategory.
func (l *Lexicon) CategoryOf(term string) string {
	if category, ok := l.frameworkLookup[Normalize(term)]; ok {
		return category
	}
	return DefaultExplicitCategory
}

func (l *Lexicon) index() {
	l.frameworkLookup = make(map[string]string)
	for _, category := range l.Framework {
		for _, skill := range category.Skills {
			key := Normalize(skill)
			if _, ok := l.frameworkLookup[key]; !ok {
				l.frameworkLookup[key] = category.Name
			}
		}
	}
}

func (l *Lexicon) validate() error {
	for _, term := range l.Terms {
		if Normalize(term) == "" {
			return fmt.Errorf("term %q normalizes to an empty key", term)
		}
	}
	for _, category := range l.Framework {
		if strings.TrimSpace(category.Name) == "" {
			return fmt.Errorf("framework category without a name")
		}
	}
	for _, implicit := range l.Implicit {
		if Normalize(implicit.Name) == "" {
			return fmt.Errorf("implicit skill without a name")
		}
		if len(implicit.Patterns) == 0 {
			return fmt.Errorf("implicit skill %q has no patterns", implicit.Name)
		}
	}
	return nil
}
