package rulegen

import (
	"strings"

	"github.com/donutnomad/rulekit/internal/annotation"
	"github.com/donutnomad/rulekit/rule"
)

// collect validates the annotated targets of one directory. Targets are in
// source order.
func collect(dir string, targets []*annotation.Target) (*Package, []error) {
	pkg := &Package{Dir: dir}
	var errs []error
	var rules []*annotation.Target

	for _, t := range targets {
		pkg.Name = t.PackageName
		familyAnn := annotation.Get(t.Annotations, AnnotationFamily)
		ruleAnn := annotation.Get(t.Annotations, AnnotationRule)

		switch {
		case familyAnn != nil && ruleAnn != nil:
			errs = append(errs, errorf(t.Position, "%s carries both @%s and @%s", t.Name, AnnotationFamily, AnnotationRule))
		case familyAnn != nil:
			family, err := collectFamily(t, familyAnn)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if pkg.Family != nil {
				errs = append(errs, errorf(t.Position, "second @%s %s, already declared by %s at %s",
					AnnotationFamily, t.Name, pkg.Family.Var, pkg.Family.Position))
				continue
			}
			pkg.Family = family
		case ruleAnn != nil:
			rules = append(rules, t)
		}
	}

	if len(rules) == 0 {
		return pkg, errs
	}
	if pkg.Family == nil {
		if len(errs) == 0 {
			errs = append(errs, errorf(rules[0].Position, "@%s %s without a @%s in package %s",
				AnnotationRule, rules[0].Name, AnnotationFamily, pkg.Name))
		}
		return pkg, errs
	}

	seen := make(map[string]*Rule)
	for _, t := range rules {
		r, err := collectRule(pkg.Family.Prefix, t, annotation.Get(t.Annotations, AnnotationRule))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, ok := seen[r.ID]; ok {
			errs = append(errs, errorf(r.Position, "%w: %s is also declared by %s at %s", rule.ErrDuplicateID, r.ID, prev.Var, prev.Position))
			continue
		}
		seen[r.ID] = r
		pkg.Rules = append(pkg.Rules, r)
	}
	return pkg, errs
}

func collectFamily(t *annotation.Target, ann *annotation.Annotation) (*Family, error) {
	if t.Kind != annotation.KindVar {
		return nil, errorf(t.Position, "@%s must mark a var, %s is a %s", AnnotationFamily, t.Name, t.Kind)
	}
	prefix := ann.Param("prefix")
	if _, err := rule.FormatID(prefix, 0); err != nil {
		return nil, &Error{Pos: t.Position, Err: err}
	}
	return &Family{Var: t.Name, Prefix: prefix, Position: t.Position}, nil
}

func collectRule(prefix string, t *annotation.Target, ann *annotation.Annotation) (*Rule, error) {
	if t.Kind != annotation.KindVar {
		return nil, errorf(t.Position, "@%s must mark a var, %s is a %s", AnnotationRule, t.Name, t.Kind)
	}
	if t.HasValue {
		return nil, errorf(t.Position, "%s must not be initialized, the generated init assigns it", t.Name)
	}
	if !isDescriptorType(t.Type) {
		return nil, errorf(t.Position, "%s must be declared as *rule.Descriptor, got %q", t.Name, t.Type)
	}

	id, number, err := rule.DeriveID(prefix, t.Name)
	if err != nil {
		return nil, &Error{Pos: t.Position, Err: err}
	}
	rest := t.Name[len(id):]
	if rest != "" && !strings.HasPrefix(rest, "_") {
		return nil, errorf(t.Position, "%w: %s must be followed by _ in %s", rule.ErrInvalidID, id, t.Name)
	}

	r := &Rule{
		Var:      t.Name,
		ID:       id,
		Number:   number,
		Name:     strings.TrimPrefix(rest, "_"),
		Owner:    rule.AnalyzerKey(ann.Param("owner")),
		Category: ann.Param("category"),
		Position: t.Position,
	}
	if r.Category == "" {
		return nil, errorf(t.Position, "@%s on %s has no category", AnnotationRule, t.Name)
	}
	if ann.HasParam("severity") {
		sev, err := rule.ParseSeverity(ann.Param("severity"))
		if err != nil {
			return nil, &Error{Pos: t.Position, Err: err}
		}
		r.Severity = sev
		r.HasSeverity = true
	}
	return r, nil
}

// isDescriptorType accepts *rule.Descriptor under any import name, and
// *Descriptor inside package rule itself.
func isDescriptorType(typ string) bool {
	if !strings.HasPrefix(typ, "*") {
		return false
	}
	typ = typ[1:]
	if typ == "Descriptor" {
		return true
	}
	_, sel, ok := strings.Cut(typ, ".")
	return ok && sel == "Descriptor"
}
