package rule

import (
	"fmt"
	"strings"

	"github.com/donutnomad/rulekit/resource"
	"golang.org/x/text/language"
)

// Resource property names appended to the rule id to form resource keys.
const (
	PropTitle         = "Title"
	PropMessageFormat = "MessageFormat"
	PropDescription   = "Description"
)

// Config is the policy of one rule family.
type Config struct {
	// Prefix is the alphabetic part of every rule id, e.g. "MOCK".
	Prefix string
	// DocsBaseURI is joined with "{ID}.md" to form the help link.
	DocsBaseURI string
	// Resources provides titles, message formats and descriptions.
	// Nil means every text is absent.
	Resources resource.Provider
	// Language is the default language of the resources. Defaults to English.
	Language language.Tag
	// DefaultSeverity returns the severity of rules declared without one.
	DefaultSeverity func(category string) (Severity, bool)
}

// CategoryDefaults returns a DefaultSeverity hook backed by a fixed table.
func CategoryDefaults(defaults map[string]Severity) func(string) (Severity, bool) {
	table := make(map[string]Severity, len(defaults))
	for k, v := range defaults {
		table[k] = v
	}
	return func(category string) (Severity, bool) {
		sev, ok := table[category]
		return sev, ok
	}
}

// ResourceKey returns the resource key of a descriptor property.
func ResourceKey(id, property string) string {
	return id + "_" + property
}

// HelpLink returns the documentation link of id under base. Without a base
// the link is relative, which go/analysis resolves against the analyzer URL.
func HelpLink(base, id string) string {
	if base == "" {
		return id + ".md"
	}
	return strings.TrimRight(base, "/") + "/" + id + ".md"
}

// NewDescriptor creates the descriptor for number in category.
//
// severity is optional; without it the category default applies, and a
// category without a default is an error. Missing resource texts are not.
func (c *Config) NewDescriptor(number int, category string, severity ...Severity) (*Descriptor, error) {
	id, err := FormatID(c.Prefix, number)
	if err != nil {
		return nil, err
	}

	sev, err := c.severity(id, category, severity)
	if err != nil {
		return nil, err
	}

	tag := c.Language
	if tag == language.Und {
		tag = language.English
	}

	return &Descriptor{
		ID:               id,
		Title:            resource.Resolve(ResourceKey(id, PropTitle), c.Resources, tag),
		MessageFormat:    resource.Resolve(ResourceKey(id, PropMessageFormat), c.Resources, tag),
		Description:      resource.Resolve(ResourceKey(id, PropDescription), c.Resources, tag),
		Category:         category,
		DefaultSeverity:  sev,
		EnabledByDefault: true,
		HelpLinkURI:      HelpLink(c.DocsBaseURI, id),
	}, nil
}

func (c *Config) severity(id, category string, given []Severity) (Severity, error) {
	switch len(given) {
	case 0:
	case 1:
		if !given[0].Valid() {
			return 0, fmt.Errorf("%s: invalid severity %d", id, uint8(given[0]))
		}
		return given[0], nil
	default:
		return 0, fmt.Errorf("%w: %s got %d", ErrSeverityArgs, id, len(given))
	}

	if c.DefaultSeverity != nil {
		if sev, ok := c.DefaultSeverity(category); ok {
			return sev, nil
		}
	}
	return 0, fmt.Errorf("%w: %s in category %q", ErrNoSeverity, id, category)
}
