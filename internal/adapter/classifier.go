package adapter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

// Classifier maps a source path to the categories it belongs to.
type Classifier interface {
	Categories(path m.Path) []m.Category
}

// CategoryPatterns are the globs of one category. A path belongs to the
// category when it matches an include glob and no exclude glob.
type CategoryPatterns struct {
	Include []string `mapstructure:"include" yaml:"include"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
}

// CategoryTable maps categories to their globs.
type CategoryTable map[m.Category]CategoryPatterns

// DefaultCategoryTable returns the conventional Rails layout.
func DefaultCategoryTable() CategoryTable {
	return CategoryTable{
		m.CategoryModel: {
			Include: []string{"app/models/**/*.rb"},
			Exclude: []string{"app/models/concerns/**"},
		},
		m.CategoryRoute:      {Include: []string{"config/routes.rb", "config/routes/**/*.rb"}},
		m.CategoryController: {Include: []string{"app/controllers/**/*.rb"}},
		m.CategoryMigration:  {Include: []string{"db/migrate/*.rb"}},
		m.CategoryHelper:     {Include: []string{"app/helpers/**/*.rb"}},
		m.CategoryView:       {Include: []string{"app/views/**/*.{erb,haml,slim,rhtml}"}},
		m.CategoryMailer:     {Include: []string{"app/mailers/**/*.rb"}},
		m.CategorySchema:     {Include: []string{"db/schema.rb"}},
	}
}

// GlobClassifier classifies paths with doublestar globs. Results are memoized
// and the classifier is safe for concurrent use.
type GlobClassifier struct {
	table CategoryTable
	order []m.Category

	mu    sync.RWMutex
	cache map[m.Path][]m.Category
}

// NewGlobClassifier validates table and returns a classifier for it. A nil
// table means DefaultCategoryTable.
func NewGlobClassifier(table CategoryTable) (*GlobClassifier, error) {
	if table == nil {
		table = DefaultCategoryTable()
	}

	for category, patterns := range table {
		for _, glob := range append(append([]string{}, patterns.Include...), patterns.Exclude...) {
			if !doublestar.ValidatePattern(glob) {
				return nil, fmt.Errorf("category %s: invalid glob %q", category, glob)
			}
		}
	}

	return &GlobClassifier{
		table: table,
		order: categoryOrder(table),
		cache: make(map[m.Path][]m.Category),
	}, nil
}

// Categories implements Classifier. Unmatched paths have no category.
func (c *GlobClassifier) Categories(path m.Path) []m.Category {
	key := normalizePath(path)

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()

	if ok {
		return cached
	}

	var categories []m.Category

	for _, category := range c.order {
		if c.matches(c.table[category], string(key)) {
			categories = append(categories, category)
		}
	}

	c.mu.Lock()
	c.cache[key] = categories
	c.mu.Unlock()

	return categories
}

func (c *GlobClassifier) matches(patterns CategoryPatterns, path string) bool {
	if !matchAnyGlob(patterns.Include, path) {
		return false
	}

	return !matchAnyGlob(patterns.Exclude, path)
}

func matchAnyGlob(globs []string, path string) bool {
	for _, glob := range globs {
		// globs are validated in NewGlobClassifier
		if ok, _ := doublestar.Match(glob, path); ok {
			return true
		}
	}

	return false
}

func normalizePath(path m.Path) m.Path {
	p := filepath.ToSlash(string(path))
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}

	return m.Path(p)
}

// categoryOrder lists the known categories first, then custom ones sorted.
func categoryOrder(table CategoryTable) []m.Category {
	order := make([]m.Category, 0, len(table))

	known := make(map[m.Category]struct{})
	for _, category := range m.Categories() {
		known[category] = struct{}{}

		if _, ok := table[category]; ok {
			order = append(order, category)
		}
	}

	var custom []m.Category

	for category := range table {
		if _, ok := known[category]; !ok {
			custom = append(custom, category)
		}
	}

	sort.Slice(custom, func(i, j int) bool { return custom[i] < custom[j] })

	return append(order, custom...)
}
