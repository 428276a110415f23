// Package template provides a brace placeholder engine for rendering greetings.
//
// Placeholders are single-brace keys looked up in a flat string map. Doubled
// braces are escapes for literal braces. There are no helpers, blocks or
// expressions: a placeholder is only ever a key.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	vars := map[string]string{
//	    "name":      "Alice",
//	    "timeOfDay": "morning",
//	}
//
//	result := engine.Render("Hi {name}, good {timeOfDay}! {{literal}}", vars)
//	// Output: Hi Alice, good morning! {literal}
//
// Rendering rules:
//   - {key} - Replaced by vars[key]; Unicode whitespace around key (as
//     defined by unicode.IsSpace, so including U+00A0) is ignored
//   - {missing} - Replaced by the empty string
//   - {{ and }} - Literal { and }
//   - { without a closing } - Emitted as is
//
// Rendering never fails.
package template
