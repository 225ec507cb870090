// Package mockrules is a small rule family used by the rulekit tools and
// tests. Its analyzer, mock, reports panic calls, empty function bodies and
// underscores in function names.
package mockrules

import (
	"embed"

	"github.com/donutnomad/rulekit/resource"
	"github.com/donutnomad/rulekit/rule"
	"golang.org/x/text/language"
)

//go:generate go run github.com/donutnomad/rulekit gen .

const (
	DocsBaseURI = "https://github.com/donutnomad/rulekit/blob/main/docs/rules"

	CategoryMock   = "Mock"
	CategoryMapped = "Mapped"
)

//go:embed resources
var resourceFS embed.FS

// Resources holds the English and Chinese texts of the MOCK rules.
var Resources = loadResources()

func loadResources() *resource.Store {
	store := resource.NewStore(language.English)
	if err := store.LoadFS(resourceFS, "resources"); err != nil {
		panic(err)
	}
	return store
}

// Rules is the MOCK family.
// @RuleFamily(prefix=MOCK)
var Rules = rule.NewFamily(rule.Config{
	Prefix:      "MOCK",
	DocsBaseURI: DocsBaseURI,
	Resources:   Resources,
	DefaultSeverity: rule.CategoryDefaults(map[string]rule.Severity{
		CategoryMapped: rule.SeverityWarning,
	}),
})

var (
	// @Rule(owner=mock, category=Mock, severity=error)
	MOCK0001_NoPanic *rule.Descriptor

	// @Rule(owner=mock, category=Mock, severity=hidden)
	MOCK0002_EmptyBody *rule.Descriptor

	// MOCK1002_Underscore takes its severity from the Mapped category.
	// @Rule(owner=mock, category=Mapped)
	MOCK1002_Underscore *rule.Descriptor

	// MOCK9000_Helper is shared by tests and not reported by any analyzer.
	// @Rule(category=Mock, severity=info)
	MOCK9000_Helper *rule.Descriptor
)
