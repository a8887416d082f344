// Package resources maps skills to learning resources.
package resources

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/skillsense/internal/skills"
)

const searchURL = "https://www.coursera.org/search?query="

var defaults = map[string]string{
	"python":                 "https://docs.python.org/3/tutorial/",
	"java":                   "https://dev.java/learn/",
	"javascript":             "https://developer.mozilla.org/en-US/docs/Learn/JavaScript",
	"typescript":             "https://www.typescriptlang.org/docs/handbook/intro.html",
	"golang":                 "https://go.dev/tour/",
	"rust":                   "https://doc.rust-lang.org/book/",
	"sql":                    "https://www.sqlbolt.com/",
	"aws":                    "https://aws.amazon.com/training/",
	"azure":                  "https://learn.microsoft.com/en-us/training/azure/",
	"gcp":                    "https://cloud.google.com/learn/training",
	"cloud":                  "https://www.coursera.org/courses?query=cloud%20computing",
	"docker":                 "https://docs.docker.com/get-started/",
	"kubernetes":             "https://kubernetes.io/docs/tutorials/",
	"terraform":              "https://developer.hashicorp.com/terraform/tutorials",
	"ci cd":                  "https://docs.github.com/en/actions/learn-github-actions",
	"git":                    "https://git-scm.com/book/en/v2",
	"machine learning":       "https://www.coursera.org/learn/machine-learning",
	"deep learning":          "https://www.deeplearning.ai/courses/",
	"data analysis":          "https://www.kaggle.com/learn/pandas",
	"data science":           "https://www.kaggle.com/learn",
	"pandas":                 "https://pandas.pydata.org/docs/getting_started/",
	"pytorch":                "https://pytorch.org/tutorials/",
	"tensorflow":             "https://www.tensorflow.org/tutorials",
	"nlp":                    "https://huggingface.co/learn/nlp-course",
	"mlops":                  "https://ml-ops.org/",
	"agile":                  "https://www.atlassian.com/agile",
	"scrum":                  "https://scrumguides.org/",
	"kanban":                 "https://www.atlassian.com/agile/kanban",
	"project management":     "https://www.pmi.org/learning",
	"product management":     "https://www.productplan.com/learn/",
	"stakeholder management": "https://www.coursera.org/courses?query=stakeholder%20management",
	"cybersecurity":          "https://owasp.org/www-project-top-ten/",
	"leadership":             "https://www.coursera.org/courses?query=leadership",
	"mentorship":             "https://www.coursera.org/courses?query=mentoring",
	"communication":          "https://www.coursera.org/courses?query=communication%20skills",
	"strategic planning":     "https://www.coursera.org/courses?query=strategic%20planning",
}

// Catalog resolves skill names to learning resource URLs. It is read-only
// after construction.
type Catalog struct {
	entries map[string]string
}

// New returns the built-in catalog.
func New() *Catalog {
	entries := make(map[string]string, len(defaults))
	for k, v := range defaults {
		entries[k] = v
	}
	return &Catalog{entries: entries}
}

// LoadFile returns the built-in catalog extended with a yaml map of
// skill name to URL. An empty path yields the built-in catalog.
func LoadFile(path string) (*Catalog, error) {
	c := New()

	path = strings.TrimSpace(path)
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resources file %q: %w", path, err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing resources file %q: %w", path, err)
	}

	for name, link := range overrides {
		key := skills.Normalize(name)
		link = strings.TrimSpace(link)
		if key == "" || link == "" {
			continue
		}
		if _, err := url.ParseRequestURI(link); err != nil {
			return nil, fmt.Errorf("resource for %q: %w", name, err)
		}
		c.entries[key] = link
	}

	return c, nil
}

// ResourcesFor returns a URL for every given name, keyed by the name as
// passed. Unknown skills get a course search link.
func (c *Catalog) ResourcesFor(names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		key := skills.Normalize(name)
		if key == "" {
			continue
		}
		if link, ok := c.entries[key]; ok {
			out[name] = link
			continue
		}
		out[name] = searchURL + url.QueryEscape(key)
	}
	return out
}
