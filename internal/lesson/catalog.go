package lesson

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Catalog is an ordered, read-only lesson collection.
type Catalog struct {
	lessons []Lesson
	byID    map[string]int
}

// CategoryGroup is a category and its lessons in catalog order.
type CategoryGroup struct {
	Name    string
	Lessons []Lesson
}

// NewCatalog validates lessons and builds a catalog preserving their order.
func NewCatalog(lessons []Lesson) (*Catalog, error) {
	if len(lessons) == 0 {
		return nil, errors.New("catalog has no lessons")
	}
	byID := make(map[string]int, len(lessons))
	for i, l := range lessons {
		if l.ID == "" {
			return nil, errors.Newf("lesson %d has an empty id", i)
		}
		if _, dup := byID[l.ID]; dup {
			return nil, errors.Newf("duplicate lesson id %q", l.ID)
		}
		if l.Content == "" {
			return nil, errors.Newf("lesson %q has empty content", l.ID)
		}
		if !l.Difficulty.Valid() {
			return nil, errors.Newf("lesson %q has unknown difficulty %q", l.ID, l.Difficulty)
		}
		if !l.Language.Valid() {
			return nil, errors.Newf("lesson %q has unknown language %q", l.ID, l.Language)
		}
		byID[l.ID] = i
	}
	out := make([]Lesson, len(lessons))
	copy(out, lessons)
	return &Catalog{lessons: out, byID: byID}, nil
}

// MustCatalog is NewCatalog for compiled-in data.
func MustCatalog(lessons []Lesson) *Catalog {
	c, err := NewCatalog(lessons)
	if err != nil {
		panic(err)
	}
	return c
}

// ListAll returns every lesson in insertion order.
func (c *Catalog) ListAll() []Lesson {
	out := make([]Lesson, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// FilterByLanguage returns the lessons for lang in catalog order.
func (c *Catalog) FilterByLanguage(lang Language) []Lesson {
	return lo.Filter(c.lessons, func(l Lesson, _ int) bool {
		return l.Language == lang
	})
}

// ByID looks up a lesson.
func (c *Catalog) ByID(id string) (Lesson, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[idx], true
}

// IndexOf returns the position of id within the lang subset, or -1.
func (c *Catalog) IndexOf(lang Language, id string) int {
	_, idx, ok := lo.FindIndexOf(c.FilterByLanguage(lang), func(l Lesson) bool {
		return l.ID == id
	})
	if !ok {
		return -1
	}
	return idx
}

// Next returns the lesson after id in the lang subset. An unknown id
// yields the first lesson of the subset.
func (c *Catalog) Next(lang Language, id string) (Lesson, bool) {
	subset := c.FilterByLanguage(lang)
	next := c.IndexOf(lang, id) + 1
	if next >= len(subset) {
		return Lesson{}, false
	}
	return subset[next], true
}

// Categories groups the lang subset by category in first-appearance order.
func (c *Catalog) Categories(lang Language) []CategoryGroup {
	subset := c.FilterByLanguage(lang)
	grouped := lo.GroupBy(subset, func(l Lesson) string { return l.Category })
	names := lo.Uniq(lo.Map(subset, func(l Lesson, _ int) string { return l.Category }))
	return lo.Map(names, func(name string, _ int) CategoryGroup {
		return CategoryGroup{Name: name, Lessons: grouped[name]}
	})
}
