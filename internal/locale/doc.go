// Package locale resolves semantic keys to localized strings.
//
// The built-in dictionary is embedded as active.<tag>.toml files and parsed
// once on first use. Lookups fall back from the exact locale to its base
// language, then to the default language, and finally to the key itself:
//
//	r := locale.NewResolver(locale.Default())
//	r.Resolve("salutation", "es")    // "Estimado"
//	r.Resolve("salutation", "es-MX") // "Estimado"
//	r.Resolve("salutation", "xx")    // "Dear"
//	r.Resolve("unknown.key", "en")   // "unknown.key"
package locale
