// Package rule holds the diagnostic descriptor registry.
//
// # Data model
//
//   - Descriptor – immutable metadata of one rule: id, localizable title,
//     message format and description, category, default severity and help link.
//   - AnalyzerKey – the analyzer that owns a descriptor, usually the
//     analysis.Analyzer name.
//   - Registry – two indexes built once: id → descriptor and
//     analyzer → descriptors.
//
// # Declaring rules
//
// A Family is the rule set of a group of analyzers. It is a package-level
// variable carrying the family Config (id prefix, docs base URI, resources and
// the category default severities). Rules are package-level variables created
// with Family.Declare, or Family.New for helpers no analyzer reports:
//
//	var rules = rule.NewFamily(rule.Config{
//		Prefix:          "MOCK",
//		DocsBaseURI:     "https://example.com/rules",
//		Resources:       store,
//		DefaultSeverity: rule.CategoryDefaults(map[string]rule.Severity{"Mapped": rule.SeverityWarning}),
//	})
//
//	var (
//		MOCK0001 = rules.Declare("mock", 1, "Mock", rule.SeverityError)
//		MOCK1002 = rules.Declare("mock", 1002, "Mapped")
//	)
//
// Descriptor creation errors (number out of range, no severity for the
// category) panic during package initialisation. The indexes are built on first
// use, exactly once; a duplicate id makes Family.Load fail and Family.Registry
// panic. Lookups never fail: unknown ids and analyzers are simply absent.
//
// The rulegen package can write the Declare calls from annotated variables.
package rule
