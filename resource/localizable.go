package resource

import "golang.org/x/text/language"

// Localizable is a text that is resolved against a Provider when rendered.
// The zero value is an absent text.
type Localizable struct {
	key      string
	provider Provider
	fallback language.Tag
}

// NewLocalizable binds key to provider. fallback is the language used by String.
func NewLocalizable(key string, provider Provider, fallback language.Tag) Localizable {
	if provider == nil {
		return Localizable{}
	}
	return Localizable{key: key, provider: provider, fallback: fallback}
}

// Resolve returns a Localizable for key when provider knows it in the fallback
// language, and the absent value otherwise.
func Resolve(key string, provider Provider, fallback language.Tag) Localizable {
	if provider == nil {
		return Localizable{}
	}
	if _, ok := provider.Lookup(key, fallback); !ok {
		return Localizable{}
	}
	return NewLocalizable(key, provider, fallback)
}

// IsZero reports whether the text is absent.
func (l Localizable) IsZero() bool {
	return l.provider == nil
}

// Key returns the resource key, or "" for an absent text.
func (l Localizable) Key() string {
	return l.key
}

// Localize renders the text in tag, falling back to the default language.
func (l Localizable) Localize(tag language.Tag) string {
	if l.provider == nil {
		return ""
	}
	if s, ok := l.provider.Lookup(l.key, tag); ok {
		return s
	}
	if tag != l.fallback {
		if s, ok := l.provider.Lookup(l.key, l.fallback); ok {
			return s
		}
	}
	return ""
}

// String renders the text in the default language.
func (l Localizable) String() string {
	return l.Localize(l.fallback)
}

// Literal returns a Localizable that always renders s.
func Literal(s string) Localizable {
	return Localizable{
		key: s,
		provider: ProviderFunc(func(string, language.Tag) (string, bool) {
			return s, true
		}),
		fallback: language.Und,
	}
}
