package models

import (
	"sort"
	"strings"
)

// Document kinds. Metadata documents describe metadata field structures,
// facet documents describe facet structures.
const (
	KindMetadata = "metadata"
	KindFacets   = "facets"
)

// Document variants, one per pipeline stage output.
const (
	VariantCurrent    = "current"
	VariantSuggested  = "suggested"
	VariantNormalized = "normalized"
)

// Fixed target taxonomy categories. Core holds app-specific identity fields
// and always sorts first; Tags & Labels sorts second; every other category
// sorts alphabetically after them.
const (
	CategoryCore = "Core"
	CategoryTags = "Tags & Labels"
)

// Field is a single entry inside a category. Current and suggested documents
// use only Name (and Values for facets); normalized documents additionally
// carry the display name, the migration annotation and the unmapped flag.
type Field struct {
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"display_name,omitempty"`
	Was         string   `yaml:"was,omitempty"`
	Unmapped    bool     `yaml:"unmapped,omitempty"`
	Values      []string `yaml:"values,omitempty"`
}

// Category is an ordered group of fields sharing one category name.
type Category struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Application holds one application's category groups.
type Application struct {
	Key        string     `yaml:"key"`
	Name       string     `yaml:"name"`
	Categories []Category `yaml:"categories"`
}

// StructureDocument is one immutable pipeline snapshot: the full category
// structure of every application for one kind, at one stage. Stages never
// mutate a document in place; each stage builds a fresh one.
type StructureDocument struct {
	Kind         string        `yaml:"kind"`
	Variant      string        `yaml:"variant"`
	Applications []Application `yaml:"applications"`
}

// ApplicationKey derives the stable lookup key for an application display
// name: lowercase, spaces to underscores, "&" to "and".
func ApplicationKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "&", "and")
	key = strings.Join(strings.Fields(key), "_")
	return key
}

// CategoryRank returns the sort rank of a category name: Core first,
// Tags & Labels second, everything else third (alphabetical among themselves).
func CategoryRank(name string) int {
	switch {
	case strings.EqualFold(name, CategoryCore):
		return 0
	case strings.EqualFold(name, CategoryTags):
		return 1
	default:
		return 2
	}
}

// CategoryLess orders category names per the taxonomy invariant.
func CategoryLess(a, b string) bool {
	ra, rb := CategoryRank(a), CategoryRank(b)
	if ra != rb {
		return ra < rb
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

// SortCategories sorts a category slice in place per the taxonomy invariant.
func SortCategories(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return CategoryLess(categories[i].Name, categories[j].Name)
	})
}

// Sort puts the document into its canonical serialization order:
// applications by key, categories per the taxonomy invariant. Field order
// within a category is left to the producing stage.
func (d *StructureDocument) Sort() {
	sort.SliceStable(d.Applications, func(i, j int) bool {
		return d.Applications[i].Key < d.Applications[j].Key
	})
	for i := range d.Applications {
		SortCategories(d.Applications[i].Categories)
	}
}

// Application returns the application with the given key, or nil.
func (d *StructureDocument) Application(key string) *Application {
	for i := range d.Applications {
		if d.Applications[i].Key == key {
			return &d.Applications[i]
		}
	}
	return nil
}

// EnsureApplication returns the application with the given key, appending a
// new one when absent.
func (d *StructureDocument) EnsureApplication(key, name string) *Application {
	if app := d.Application(key); app != nil {
		return app
	}
	d.Applications = append(d.Applications, Application{Key: key, Name: name})
	return &d.Applications[len(d.Applications)-1]
}

// Category returns the category with the given name, or nil.
func (a *Application) Category(name string) *Category {
	for i := range a.Categories {
		if strings.EqualFold(a.Categories[i].Name, name) {
			return &a.Categories[i]
		}
	}
	return nil
}

// EnsureCategory returns the category with the given name, appending a new
// one when absent.
func (a *Application) EnsureCategory(name string) *Category {
	if cat := a.Category(name); cat != nil {
		return cat
	}
	a.Categories = append(a.Categories, Category{Name: name})
	return &a.Categories[len(a.Categories)-1]
}

// HasField reports whether the category already holds a field with this name.
func (c *Category) HasField(name string) bool {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return true
		}
	}
	return false
}

// FieldSet returns the set of (application key, field name) pairs in the
// document, keyed "appkey/fieldname". The Suggester must leave this set
// unchanged between the current and suggested documents.
func (d *StructureDocument) FieldSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, app := range d.Applications {
		for _, cat := range app.Categories {
			for _, f := range cat.Fields {
				set[app.Key+"/"+f.Name] = struct{}{}
			}
		}
	}
	return set
}
