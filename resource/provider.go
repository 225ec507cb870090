// Package resource resolves the localized texts attached to rule descriptors.
//
// Texts are looked up by key, following the `{ID}_{Property}` convention used by
// package rule, and by language. A missing key is never an error: callers get an
// absent Localizable and decide how to render it.
package resource

import "golang.org/x/text/language"

//go:generate mockgen -destination=../internal/mocks/provider_mock.go -package=mocks github.com/donutnomad/rulekit/resource Provider

// Provider looks up localized strings.
type Provider interface {
	// Lookup returns the text stored under key for the given language.
	// Implementations may fall back to a related language; the bool reports
	// whether any text was found.
	Lookup(key string, tag language.Tag) (string, bool)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(key string, tag language.Tag) (string, bool)

func (f ProviderFunc) Lookup(key string, tag language.Tag) (string, bool) {
	return f(key, tag)
}

// Empty is a provider that knows no keys.
var Empty Provider = ProviderFunc(func(string, language.Tag) (string, bool) {
	return "", false
})
