package greeting

import (
	"maps"
	"sync"
)

// fallbackTemplate is used for a category with no registered template.
const fallbackTemplate = "{customMessage}"

// defaultTemplates seeds every registry. Placeholders: {salutation},
// {title}, {name}, {timeOfDay}, {customMessage}.
var defaultTemplates = map[Category]string{
	CategoryFormal:   "{salutation} {title} {name}, good {timeOfDay}. {customMessage}",
	CategoryCasual:   "Hey {name}! {timeOfDay} — {customMessage}",
	CategoryFriendly: "Hi {name}, hope you're having a lovely {timeOfDay}! {customMessage}",
	CategoryHumorous: "Yo {name}! It's {timeOfDay} — stay awesome. {customMessage}",
	CategoryCustom:   "{customMessage}",
}

// DefaultTemplate returns the built-in template for c.
func DefaultTemplate(c Category) (string, bool) {
	tmpl, ok := defaultTemplates[c]
	return tmpl, ok
}

// Registry holds one template per category. It starts with the defaults
// and registration overwrites. Safe for concurrent use.
type Registry struct {
	templates map[Category]string
	mu        sync.RWMutex
}

// NewRegistry creates a registry seeded with the default templates.
func NewRegistry() *Registry {
	return &Registry{
		templates: maps.Clone(defaultTemplates),
	}
}

// Register stores tmpl for c, replacing any previous template.
func (r *Registry) Register(c Category, tmpl string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[c] = tmpl
}

// Lookup returns the template for c.
func (r *Registry) Lookup(c Category) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tmpl, ok := r.templates[c]
	return tmpl, ok
}

// Snapshot returns a copy of all registered templates.
func (r *Registry) Snapshot() map[Category]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.templates)
}
