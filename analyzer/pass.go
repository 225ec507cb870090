package analyzer

import (
	"errors"
	"fmt"

	"github.com/donutnomad/rulekit/rule"
	"golang.org/x/tools/go/analysis"
)

// ErrUnsupported is returned from Run when a rule the analyzer does not own
// was reported.
var ErrUnsupported = errors.New("reported rule is not supported by the analyzer")

// Pass is the analysis.Pass of one package, extended with rule reporting.
type Pass struct {
	*analysis.Pass

	analyzer *Analyzer
	err      error
}

// Analyzer returns the analyzer running this pass.
func (p *Pass) Analyzer() *Analyzer {
	return p.analyzer
}

// Report emits a diagnostic for d at rng; args fill the message format.
func (p *Pass) Report(d *rule.Descriptor, rng analysis.Range, args ...any) {
	p.report(d, rng, nil, args)
}

// ReportWithFixes is Report with suggested fixes attached.
func (p *Pass) ReportWithFixes(d *rule.Descriptor, rng analysis.Range, fixes []analysis.SuggestedFix, args ...any) {
	p.report(d, rng, fixes, args)
}

func (p *Pass) report(d *rule.Descriptor, rng analysis.Range, fixes []analysis.SuggestedFix, args []any) {
	if !p.analyzer.Supports(d) {
		id := "<nil>"
		if d != nil {
			id = d.ID
		}
		p.err = errors.Join(p.err, fmt.Errorf("%w: %s reported by %s", ErrUnsupported, id, p.analyzer.Name))
		return
	}
	if !p.analyzer.Enabled(d) {
		return
	}
	diag := Diagnostic(d, rng, args...)
	diag.SuggestedFixes = fixes
	p.Pass.Report(diag)
}

// Diagnostic converts d into an analysis.Diagnostic at rng.
func Diagnostic(d *rule.Descriptor, rng analysis.Range, args ...any) analysis.Diagnostic {
	return analysis.Diagnostic{
		Pos:      rng.Pos(),
		End:      rng.End(),
		Category: d.ID,
		Message:  d.ID + ": " + d.Message(args...),
		URL:      d.HelpLinkURI,
	}
}
