package rulegen

import (
	"fmt"

	"github.com/donutnomad/rulekit/rule"
)

// Build assembles the registry the generated init would produce for pkg,
// using cfg for everything but the prefix.
func (p *Package) Build(cfg rule.Config) (*rule.Registry, error) {
	if p.Family == nil {
		return nil, fmt.Errorf("package %s has no rule family", p.Name)
	}
	cfg.Prefix = p.Family.Prefix

	b := rule.NewBuilder()
	for _, r := range p.Rules {
		var severity []rule.Severity
		if r.HasSeverity {
			severity = append(severity, r.Severity)
		}
		d, err := cfg.NewDescriptor(r.Number, r.Category, severity...)
		if err != nil {
			return nil, &Error{Pos: r.Position, Err: err}
		}
		if r.Owner == "" {
			continue
		}
		if err := b.Add(r.Owner, d); err != nil {
			return nil, &Error{Pos: r.Position, Err: err}
		}
	}
	return b.Build(), nil
}

// Names maps each rule id of pkg to its slug.
func (p *Package) Names() map[string]string {
	names := make(map[string]string, len(p.Rules))
	for _, r := range p.Rules {
		if r.Name != "" {
			names[r.ID] = r.Slug()
		}
	}
	return names
}
