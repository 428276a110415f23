package template

import (
	"strings"
	"sync"
)

// Engine renders brace templates, caching the compiled form of every
// template string it has seen.
type Engine struct {
	cache map[string]*Template
	mu    sync.RWMutex
}

// NewEngine creates a new template engine
func NewEngine() *Engine {
	return &Engine{
		cache: make(map[string]*Template),
	}
}

// Render renders a template with the given variables.
// It never fails: unknown placeholders render as the empty string and
// malformed placeholders are emitted literally.
func (e *Engine) Render(templateStr string, vars map[string]string) string {
	if templateStr == "" {
		return ""
	}
	return e.getTemplate(templateStr).Execute(vars)
}

// Compiled returns the compiled form of templateStr, compiling and caching
// it on first use.
func (e *Engine) Compiled(templateStr string) *Template {
	return e.getTemplate(templateStr)
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(templateStr string) *Template {
	e.mu.RLock()
	if tmpl, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return tmpl
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if tmpl, ok := e.cache[templateStr]; ok {
		return tmpl
	}

	tmpl := Compile(templateStr)
	e.cache[templateStr] = tmpl

	return tmpl
}

// Len returns the number of cached templates.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*Template)
}

// Render compiles and executes templateStr in one step without caching.
func Render(templateStr string, vars map[string]string) string {
	if templateStr == "" {
		return ""
	}
	return Compile(templateStr).Execute(vars)
}

// segment is either literal text or a placeholder key.
type segment struct {
	text        string
	placeholder bool
}

// Template is a compiled brace template. It is immutable and safe for
// concurrent use.
type Template struct {
	source   string
	segments []segment
}

// Compile parses templateStr into literal and placeholder segments.
//
// Doubled braces are escapes and pair greedily from the left within a run
// of the same brace, so "{{{" is an escaped brace followed by a raw one.
// A raw "{" opens a placeholder that closes at the next raw "}"; without
// one the "{" is literal text.
func Compile(templateStr string) *Template {
	t := &Template{source: templateStr}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	s := templateStr
	for i := 0; i < len(s); {
		switch {
		case isPair(s, i, '{'):
			lit.WriteByte('{')
			i += 2
		case isPair(s, i, '}'):
			lit.WriteByte('}')
			i += 2
		case s[i] == '{':
			key, end, ok := scanPlaceholder(s, i+1)
			if !ok {
				lit.WriteByte('{')
				i++
				continue
			}
			flush()
			t.segments = append(t.segments, segment{text: key, placeholder: true})
			i = end + 1
		default:
			lit.WriteByte(s[i])
			i++
		}
	}
	flush()

	return t
}

// scanPlaceholder reads a placeholder body starting at from and returns the
// trimmed key and the index of the closing raw brace. Escaped braces inside
// the body become part of the key as single braces.
func scanPlaceholder(s string, from int) (string, int, bool) {
	var key strings.Builder
	for i := from; i < len(s); {
		switch {
		case isPair(s, i, '{'):
			key.WriteByte('{')
			i += 2
		case isPair(s, i, '}'):
			key.WriteByte('}')
			i += 2
		case s[i] == '}':
			return strings.TrimSpace(key.String()), i, true
		default:
			key.WriteByte(s[i])
			i++
		}
	}
	return "", -1, false
}

func isPair(s string, i int, brace byte) bool {
	return s[i] == brace && i+1 < len(s) && s[i+1] == brace
}

// Execute renders the template. Placeholders missing from vars render as
// the empty string; a nil map is treated as empty.
func (t *Template) Execute(vars map[string]string) string {
	var out strings.Builder
	out.Grow(len(t.source))
	for _, seg := range t.segments {
		if seg.placeholder {
			out.WriteString(vars[seg.text])
			continue
		}
		out.WriteString(seg.text)
	}
	return out.String()
}

// Placeholders returns the distinct placeholder keys in order of first
// appearance.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, seg := range t.segments {
		if seg.placeholder && !seen[seg.text] {
			seen[seg.text] = true
			keys = append(keys, seg.text)
		}
	}
	return keys
}

// String returns the template source.
func (t *Template) String() string {
	return t.source
}
