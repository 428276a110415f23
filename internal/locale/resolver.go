package locale

import "strings"

// DefaultLanguage is the fallback language used when none is configured.
const DefaultLanguage = "en"

// Resolver maps a semantic key and a locale tag to a localized string.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	dict              Dictionary
	defaultLang       string
	missingKeyHandler func(localeTag, key string)
}

// Option configures a Resolver during construction.
type Option func(*Resolver)

// WithDefaultLanguage sets the language consulted after the requested one.
// An empty lang keeps DefaultLanguage.
func WithDefaultLanguage(lang string) Option {
	return func(r *Resolver) {
		if lang != "" {
			r.defaultLang = lang
		}
	}
}

// WithMissingKeyHandler sets a handler called when a key is found in no
// language and the key itself is returned.
func WithMissingKeyHandler(handler func(localeTag, key string)) Option {
	return func(r *Resolver) {
		r.missingKeyHandler = handler
	}
}

// NewResolver creates a resolver over a private copy of dict.
func NewResolver(dict Dictionary, opts ...Option) *Resolver {
	r := &Resolver{
		dict:        dict.Clone(),
		defaultLang: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the localized string for key. The lookup order is the
// exact locale, its base language ("en-US" -> "en"), the default language
// and its base language, and finally key itself, so the result is never
// empty for a non-empty key unless the dictionary holds an empty string.
// An empty localeTag means the default language.
func (r *Resolver) Resolve(key, localeTag string) string {
	if localeTag == "" {
		localeTag = r.defaultLang
	}

	if v, ok := r.dict.Lookup(localeTag, key); ok {
		return v
	}

	if base := baseLanguage(localeTag); base != localeTag {
		if v, ok := r.dict.Lookup(base, key); ok {
			return v
		}
	}

	if v, ok := r.dict.Lookup(r.defaultLang, key); ok {
		return v
	}

	if base := baseLanguage(r.defaultLang); base != r.defaultLang {
		if v, ok := r.dict.Lookup(base, key); ok {
			return v
		}
	}

	if r.missingKeyHandler != nil {
		r.missingKeyHandler(localeTag, key)
	}

	return key
}

// DefaultLanguage returns the fallback language.
func (r *Resolver) DefaultLanguage() string {
	return r.defaultLang
}

// Languages returns the locale tags known to the resolver.
func (r *Resolver) Languages() []string {
	return r.dict.Languages()
}

// baseLanguage strips the region from a language tag (e.g., "en-US" -> "en").
// Returns the input unchanged if there is no region.
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}
