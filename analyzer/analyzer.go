// Package analyzer builds go/analysis analyzers whose diagnostics are
// described by rule descriptors.
//
// An Analyzer asks its rule source once, at construction, for the descriptors
// it owns and keeps that set for its lifetime. Run functions report through
// Pass, which turns a descriptor and a position into an analysis.Diagnostic.
package analyzer

import (
	"flag"
	"fmt"
	"reflect"
	"strings"

	"github.com/donutnomad/rulekit/rule"
	"github.com/samber/lo"
	"golang.org/x/tools/go/analysis"
)

// Source provides the descriptors owned by an analyzer. *rule.Family and
// *rule.Registry implement it.
type Source interface {
	ByAnalyzer(key rule.AnalyzerKey) []*rule.Descriptor
}

// Options describe the analyzer to build.
type Options struct {
	// Name is the analyzer name and the key of its rules in the Source.
	Name string
	// Doc is the analyzer documentation; the list of rules is appended to it.
	Doc        string
	URL        string
	Requires   []*analysis.Analyzer
	ResultType reflect.Type
	FactTypes  []analysis.Fact
	Run        func(*Pass) (any, error)
}

// Analyzer is an analysis.Analyzer together with the rules it reports.
type Analyzer struct {
	*analysis.Analyzer

	key       rule.AnalyzerKey
	supported []*rule.Descriptor
	byID      map[string]*rule.Descriptor

	minSeverity rule.Severity
	disabled    map[string]bool
}

// New builds an analyzer. The supported rules are read from src here and never again.
func New(src Source, opts Options) *Analyzer {
	if opts.Run == nil {
		panic(fmt.Sprintf("analyzer %s: nil Run", opts.Name))
	}

	key := rule.AnalyzerKey(opts.Name)
	supported := src.ByAnalyzer(key)

	a := &Analyzer{
		key:         key,
		supported:   supported,
		byID:        lo.KeyBy(supported, func(d *rule.Descriptor) string { return d.ID }),
		minSeverity: rule.SeverityInfo,
		disabled:    make(map[string]bool),
	}

	a.Analyzer = &analysis.Analyzer{
		Name:       opts.Name,
		Doc:        docWithRules(opts.Doc, supported),
		URL:        opts.URL,
		Requires:   opts.Requires,
		ResultType: opts.ResultType,
		FactTypes:  opts.FactTypes,
		Run: func(pass *analysis.Pass) (any, error) {
			p := &Pass{Pass: pass, analyzer: a}
			result, err := opts.Run(p)
			if err != nil {
				return nil, err
			}
			if p.err != nil {
				return nil, p.err
			}
			return result, nil
		},
	}
	a.registerFlags(&a.Analyzer.Flags)
	return a
}

// Key returns the key the analyzer's rules are registered under.
func (a *Analyzer) Key() rule.AnalyzerKey {
	return a.key
}

// SupportedDiagnostics returns the rules this analyzer may report.
// Every call returns the same slice; do not modify it.
func (a *Analyzer) SupportedDiagnostics() []*rule.Descriptor {
	return a.supported
}

// Supports reports whether d belongs to this analyzer.
func (a *Analyzer) Supports(d *rule.Descriptor) bool {
	if d == nil {
		return false
	}
	return a.byID[d.ID] == d
}

// Enabled reports whether diagnostics for d are emitted with the current flags.
func (a *Analyzer) Enabled(d *rule.Descriptor) bool {
	if !d.EnabledByDefault || a.disabled[d.ID] {
		return false
	}
	return d.DefaultSeverity >= a.minSeverity
}

func (a *Analyzer) registerFlags(fs *flag.FlagSet) {
	fs.TextVar(&a.minSeverity, "severity", rule.SeverityInfo,
		"minimum severity reported: hidden, info, warning or error")
	fs.Func("disable", "comma separated rule ids not to report", func(s string) error {
		for _, id := range strings.Split(s, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := a.byID[id]; !ok {
				return fmt.Errorf("analyzer %s does not report %s", a.Name, id)
			}
			a.disabled[id] = true
		}
		return nil
	})
}

func docWithRules(doc string, rules []*rule.Descriptor) string {
	if len(rules) == 0 {
		return doc
	}
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(doc, "\n"))
	sb.WriteString("\n\nRules:\n")
	for _, d := range rules {
		title := d.Title.String()
		if title == "" {
			title = d.Category
		}
		fmt.Fprintf(&sb, "  %s  %-7s  %s\n", d.ID, d.DefaultSeverity, title)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// All returns the analysis analyzers of as, for multichecker or plugin entry points.
func All(as ...*Analyzer) []*analysis.Analyzer {
	return lo.Map(as, func(a *Analyzer, _ int) *analysis.Analyzer {
		return a.Analyzer
	})
}
