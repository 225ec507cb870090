package rule

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Registry indexes descriptors by id and by owning analyzer.
// A Registry is immutable once built and safe for concurrent use.
type Registry struct {
	// byID rule id -> descriptor
	byID map[string]*Descriptor
	// byAnalyzer analyzer key -> descriptors in declaration order
	byAnalyzer map[AnalyzerKey][]*Descriptor
}

// Builder fills a Registry. Each Add is checked immediately so the first
// conflicting declaration is the one reported.
type Builder struct {
	reg   *Registry
	built bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		reg: &Registry{
			byID:       make(map[string]*Descriptor),
			byAnalyzer: make(map[AnalyzerKey][]*Descriptor),
		},
	}
}

// Add records d as owned by owner.
// It fails when the id is already registered or owner is empty.
func (b *Builder) Add(owner AnalyzerKey, d *Descriptor) error {
	if b.built {
		return fmt.Errorf("rule %s: builder already built", d.ID)
	}
	if owner == "" {
		return fmt.Errorf("%w: rule %s", ErrNoOwner, d.ID)
	}
	if !ValidID(d.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidID, d.ID)
	}
	if existing, ok := b.reg.byID[d.ID]; ok {
		return fmt.Errorf("%w: %s (category %q) is already registered as %s", ErrDuplicateID, d.ID, d.Category, existing)
	}

	b.reg.byID[d.ID] = d
	b.reg.byAnalyzer[owner] = append(b.reg.byAnalyzer[owner], d)
	return nil
}

// MustAdd is Add that panics on error.
func (b *Builder) MustAdd(owner AnalyzerKey, d *Descriptor) {
	if err := b.Add(owner, d); err != nil {
		panic(err)
	}
}

// Build returns the registry. The builder cannot be used afterwards.
func (b *Builder) Build() *Registry {
	b.built = true
	for k, ds := range b.reg.byAnalyzer {
		b.reg.byAnalyzer[k] = slices.Clip(ds)
	}
	return b.reg
}

// ByID returns the descriptor with the given id.
func (r *Registry) ByID(id string) (*Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// ByAnalyzer returns the descriptors owned by key, in declaration order.
// An unknown key yields an empty slice. The slice is shared; appending to it
// copies.
func (r *Registry) ByAnalyzer(key AnalyzerKey) []*Descriptor {
	if ds, ok := r.byAnalyzer[key]; ok {
		return ds
	}
	return []*Descriptor{}
}

// Grouped returns a copy of the analyzer index.
func (r *Registry) Grouped() map[AnalyzerKey][]*Descriptor {
	out := make(map[AnalyzerKey][]*Descriptor, len(r.byAnalyzer))
	for k, ds := range r.byAnalyzer {
		out[k] = slices.Clone(ds)
	}
	return out
}

// Analyzers returns the owning analyzer keys, sorted.
func (r *Registry) Analyzers() []AnalyzerKey {
	keys := maps.Keys(r.byAnalyzer)
	slices.Sort(keys)
	return keys
}

// All returns every registered descriptor sorted by id.
func (r *Registry) All() []*Descriptor {
	out := maps.Values(r.byID)
	slices.SortFunc(out, func(a, b *Descriptor) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.byID)
}

// OwnerOf returns the analyzer that owns id.
func (r *Registry) OwnerOf(id string) (AnalyzerKey, bool) {
	d, ok := r.byID[id]
	if !ok {
		return "", false
	}
	for key, ds := range r.byAnalyzer {
		if slices.Contains(ds, d) {
			return key, true
		}
	}
	return "", false
}
