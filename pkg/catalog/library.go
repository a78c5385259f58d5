package catalog

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/matzehuels/roomgen/pkg/errors"
)

// Library indexes templates by entrance count and size. It is built once and
// read-only afterwards; concurrent readers are safe as long as nobody calls
// [Library.Add].
type Library struct {
	byEntrances map[int][]Template
	bySize      map[int]map[Size][]Template
	order       []Template

	entranceMax int
	sizeMax     int
}

// NewLibrary builds a library from templates. An empty list is rejected with
// EMPTY_CATALOG; every template is validated and names must be unique.
func NewLibrary(templates ...Template) (*Library, error) {
	if len(templates) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyCatalog, "no room templates supplied")
	}
	lib := &Library{
		byEntrances: make(map[int][]Template),
		bySize:      make(map[int]map[Size][]Template),
	}
	for _, t := range templates {
		if err := lib.Add(t); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// Add validates and indexes t, updating the running maxima.
func (l *Library) Add(t Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, ok := l.Find(t.Name); ok {
		return errors.New(errors.ErrCodeInvalidTemplate, "duplicate template name %q", t.Name)
	}
	if l.byEntrances == nil {
		l.byEntrances = make(map[int][]Template)
		l.bySize = make(map[int]map[Size][]Template)
	}

	e, s := t.EntranceCount(), t.Size()
	l.byEntrances[e] = append(l.byEntrances[e], t)
	if l.bySize[e] == nil {
		l.bySize[e] = make(map[Size][]Template)
	}
	l.bySize[e][s] = append(l.bySize[e][s], t)
	l.order = append(l.order, t)

	l.entranceMax = max(l.entranceMax, e)
	l.sizeMax = max(l.sizeMax, s.Max())
	return nil
}

// Get returns every template with exactly e entrances in insertion order, or
// nil when there is none. The returned slice must not be modified.
func (l *Library) Get(e int) []Template {
	return l.byEntrances[e]
}

// GetRandom returns a uniformly chosen template with e entrances and the
// given size. A missing match is a normal outcome reported by ok == false.
func (l *Library) GetRandom(rng *rand.Rand, e int, size Size) (Template, bool) {
	matches := l.bySize[e][size]
	if len(matches) == 0 {
		return Template{}, false
	}
	return matches[rng.IntN(len(matches))], true
}

// Find looks a template up by name.
func (l *Library) Find(name string) (Template, bool) {
	for _, t := range l.order {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// EntranceMax returns the largest entrance count seen so far.
func (l *Library) EntranceMax() int { return l.entranceMax }

// SizeMax returns the largest side length seen so far.
func (l *Library) SizeMax() int { return l.sizeMax }

// Len returns the number of templates.
func (l *Library) Len() int { return len(l.order) }

// Templates returns a copy of all templates in insertion order.
func (l *Library) Templates() []Template { return slices.Clone(l.order) }

// String summarizes the library for logs.
func (l *Library) String() string {
	counts := make([]int, 0, len(l.byEntrances))
	for e := range l.byEntrances {
		counts = append(counts, e)
	}
	slices.Sort(counts)

	parts := make([]string, len(counts))
	for i, e := range counts {
		parts[i] = fmt.Sprintf("%d:%d", e, len(l.byEntrances[e]))
	}
	return fmt.Sprintf("Library(%d templates, entrances %s, size max %d)", l.Len(), strings.Join(parts, " "), l.sizeMax)
}
