package rule

import (
	"fmt"
	"sync"
)

// declaration is one descriptor created through a Family, in call order.
type declaration struct {
	owner AnalyzerKey // empty for helpers that are not indexed
	desc  *Descriptor
}

// Family is the rule set of one group of related analyzers. It is meant to be
// a package-level variable: descriptors are declared while the package is
// initialised, and the registry is built on first use.
//
//	var rules = rule.NewFamily(rule.Config{Prefix: "MOCK"})
//
//	var MOCK0001 = rules.Declare("mock", 1, "Mock", rule.SeverityError)
type Family struct {
	config Config

	mu    sync.Mutex
	decls []declaration

	once   sync.Once
	reg    *Registry
	err    error
	builds int // number of index builds, for tests
}

// NewFamily creates a family with the given policy.
func NewFamily(config Config) *Family {
	if !prefixRegex.MatchString(config.Prefix) {
		panic(fmt.Errorf("%w: %q", ErrPrefix, config.Prefix))
	}
	return &Family{config: config}
}

// Config returns the family policy.
func (f *Family) Config() Config {
	return f.config
}

// Prefix returns the id prefix.
func (f *Family) Prefix() string {
	return f.config.Prefix
}

// New creates a descriptor that is not owned by any analyzer and therefore not
// indexed. It panics on configuration errors.
func (f *Family) New(number int, category string, severity ...Severity) *Descriptor {
	return f.declare("", number, category, severity)
}

// Declare creates a descriptor owned by owner. It panics on configuration
// errors; duplicate ids are reported when the registry is built.
func (f *Family) Declare(owner AnalyzerKey, number int, category string, severity ...Severity) *Descriptor {
	if owner == "" {
		panic(fmt.Errorf("%w: %s%04d", ErrNoOwner, f.config.Prefix, number))
	}
	return f.declare(owner, number, category, severity)
}

func (f *Family) declare(owner AnalyzerKey, number int, category string, severity []Severity) *Descriptor {
	d, err := f.config.NewDescriptor(number, category, severity...)
	if err != nil {
		panic(fmt.Errorf("rule family %s: %w", f.config.Prefix, err))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reg != nil || f.err != nil {
		panic(fmt.Errorf("rule family %s: %s declared after the registry was built", f.config.Prefix, d.ID))
	}
	f.decls = append(f.decls, declaration{owner: owner, desc: d})
	return d
}

// Load builds the registry on first call and returns the same result on every
// later call, from any goroutine.
func (f *Family) Load() (*Registry, error) {
	f.once.Do(func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.builds++
		b := NewBuilder()
		for _, decl := range f.decls {
			if decl.owner == "" {
				continue
			}
			if err := b.Add(decl.owner, decl.desc); err != nil {
				f.err = fmt.Errorf("rule family %s: %w", f.config.Prefix, err)
				return
			}
		}
		f.reg = b.Build()
	})
	return f.reg, f.err
}

// Registry returns the built registry and panics if the family is misconfigured.
func (f *Family) Registry() *Registry {
	reg, err := f.Load()
	if err != nil {
		panic(err)
	}
	return reg
}

// ByID looks up a descriptor in the family registry.
func (f *Family) ByID(id string) (*Descriptor, bool) {
	return f.Registry().ByID(id)
}

// ByAnalyzer returns the descriptors owned by key.
func (f *Family) ByAnalyzer(key AnalyzerKey) []*Descriptor {
	return f.Registry().ByAnalyzer(key)
}

// Grouped returns a snapshot of the descriptors grouped by owner.
func (f *Family) Grouped() map[AnalyzerKey][]*Descriptor {
	return f.Registry().Grouped()
}
