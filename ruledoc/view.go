package ruledoc

import (
	"github.com/donutnomad/rulekit/resource"
	"github.com/donutnomad/rulekit/rule"
	"github.com/samber/lo"
	"golang.org/x/text/language"
)

// Options controls how rules are rendered.
type Options struct {
	// Language selects the localized texts; the zero value uses each
	// descriptor's own default.
	Language language.Tag
	// Names maps rule ids to short names such as no_panic.
	Names map[string]string
	// Title of the index page.
	Title string
}

// View is the flattened form of a descriptor used by templates and the
// catalog.
type View struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	Title         string `json:"title"`
	MessageFormat string `json:"message_format,omitempty"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category"`
	Severity      string `json:"severity"`
	Enabled       bool   `json:"enabled_by_default"`
	Analyzer      string `json:"analyzer,omitempty"`
	HelpURI       string `json:"help_uri,omitempty"`
}

// Views returns every rule of reg in id order.
func Views(reg *rule.Registry, opts Options) []View {
	return lo.Map(reg.All(), func(d *rule.Descriptor, _ int) View {
		return newView(reg, d, opts)
	})
}

func newView(reg *rule.Registry, d *rule.Descriptor, opts Options) View {
	text := func(l resource.Localizable) string {
		if opts.Language == language.Und {
			return l.String()
		}
		return l.Localize(opts.Language)
	}

	owner, _ := reg.OwnerOf(d.ID)
	return View{
		ID:            d.ID,
		Name:          opts.Names[d.ID],
		Title:         text(d.Title),
		MessageFormat: text(d.MessageFormat),
		Description:   text(d.Description),
		Category:      d.Category,
		Severity:      d.DefaultSeverity.String(),
		Enabled:       d.EnabledByDefault,
		Analyzer:      string(owner),
		HelpURI:       d.HelpLinkURI,
	}
}
