package template_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/greeting-machine/internal/template"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		vars     map[string]string
		expected string
	}{
		{
			name:     "empty template",
			template: "",
			vars:     map[string]string{"name": "Bob"},
			expected: "",
		},
		{
			name:     "plain text",
			template: "Hello world",
			vars:     map[string]string{"name": "Bob"},
			expected: "Hello world",
		},
		{
			name:     "single placeholder",
			template: "Hello {name}!",
			vars:     map[string]string{"name": "Bob"},
			expected: "Hello Bob!",
		},
		{
			name:     "whitespace around key is trimmed",
			template: "Hello { name }!",
			vars:     map[string]string{"name": "Bob"},
			expected: "Hello Bob!",
		},
		{
			name:     "unicode whitespace around key is trimmed",
			template: "Hello {\u00a0name\t}!",
			vars:     map[string]string{"name": "Bob"},
			expected: "Hello Bob!",
		},
		{
			name:     "missing key renders empty",
			template: "Hello {name}{missing}!",
			vars:     map[string]string{"name": "Bob"},
			expected: "Hello Bob!",
		},
		{
			name:     "nil vars",
			template: "Hi {name}",
			vars:     nil,
			expected: "Hi ",
		},
		{
			name:     "escaped braces around placeholder",
			template: "{{a}} {b} {{c}}",
			vars:     map[string]string{"b": "X"},
			expected: "{a} X {c}",
		},
		{
			name:     "escaped placeholder syntax",
			template: "{{name}}",
			vars:     map[string]string{"name": "Bob"},
			expected: "{name}",
		},
		{
			name:     "lone escapes",
			template: "{{ and }}",
			vars:     nil,
			expected: "{ and }",
		},
		{
			name:     "unterminated placeholder is literal",
			template: "Unclosed {name",
			vars:     map[string]string{"name": "Bob"},
			expected: "Unclosed {name",
		},
		{
			name:     "stray closing brace is literal",
			template: "a } b",
			vars:     nil,
			expected: "a } b",
		},
		{
			name:     "nested brace is part of the key",
			template: "{a{b}",
			vars:     map[string]string{"a{b": "Z", "b": "wrong"},
			expected: "Z",
		},
		{
			name:     "odd brace runs pair from the left",
			template: "{{{name}}}",
			vars:     map[string]string{"name": "Bob"},
			expected: "{",
		},
		{
			name:     "empty placeholder",
			template: "a{}b",
			vars:     map[string]string{"name": "Bob"},
			expected: "ab",
		},
		{
			name:     "values are not rescanned",
			template: "{a}",
			vars:     map[string]string{"a": "{b}", "b": "wrong"},
			expected: "{b}",
		},
		{
			name:     "adjacent placeholders",
			template: "{a}{b}",
			vars:     map[string]string{"a": "1", "b": "2"},
			expected: "12",
		},
		{
			name:     "multibyte text",
			template: "¡Hola {name}! mañana",
			vars:     map[string]string{"name": "François"},
			expected: "¡Hola François! mañana",
		},
		{
			name:     "repeated placeholder",
			template: "{name} and {name}",
			vars:     map[string]string{"name": "Eve"},
			expected: "Eve and Eve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, template.Render(tt.template, tt.vars))
			require.Equal(t, tt.expected, template.NewEngine().Render(tt.template, tt.vars))
		})
	}
}

func TestRender_LiteralTextIsUnchanged(t *testing.T) {
	t.Parallel()

	vars := map[string]string{"name": "Bob", "": "empty"}
	inputs := []string{
		" ",
		"Hello, World!",
		"line one\nline two\ttabbed",
		"résumé — naïve café",
		"100% (plain) [text] <tags>",
	}

	for _, in := range inputs {
		assert.Equal(t, in, template.Render(in, vars))
	}
}

func TestRender_FullySubstitutedOutputHasNoPlaceholderBraces(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"salutation":    "Dear",
		"title":         "Dr.",
		"name":          "Alice",
		"timeOfDay":     "morning",
		"customMessage": "Welcome.",
	}

	out := template.Render("{salutation} {title} {name}, good {timeOfDay}. {customMessage}", vars)
	require.Equal(t, "Dear Dr. Alice, good morning. Welcome.", out)
	require.NotContains(t, out, "{")
	require.NotContains(t, out, "}")
}

func TestRender_EscapesRoundTripRegardlessOfVars(t *testing.T) {
	t.Parallel()

	varSets := []map[string]string{
		nil,
		{},
		{"x": "1"},
		{"x": "{", "y": "}"},
	}

	for i, vars := range varSets {
		t.Run(fmt.Sprintf("vars_%d", i), func(t *testing.T) {
			require.Equal(t, "{x} = {y}", template.Render("{{x}} = {{y}}", vars))
		})
	}
}

func TestCompile_Placeholders(t *testing.T) {
	t.Parallel()

	tmpl := template.Compile("{salutation} {title} {name}, good {timeOfDay}. {customMessage} {name} {{escaped}}")

	require.Equal(t,
		[]string{"salutation", "title", "name", "timeOfDay", "customMessage"},
		tmpl.Placeholders(),
	)
	require.Equal(t, "{salutation} {title} {name}, good {timeOfDay}. {customMessage} {name} {{escaped}}", tmpl.String())
}

func TestCompile_NoPlaceholders(t *testing.T) {
	t.Parallel()

	require.Empty(t, template.Compile("just text {{and escapes}}").Placeholders())
	require.Empty(t, template.Compile("").Placeholders())
}

func TestEngine_Cache(t *testing.T) {
	t.Parallel()

	engine := template.NewEngine()
	vars := map[string]string{"name": "Bob"}

	require.Equal(t, "Hi Bob", engine.Render("Hi {name}", vars))
	require.Equal(t, "Hi Bob", engine.Render("Hi {name}", vars))
	require.Equal(t, 1, engine.Len())

	require.Same(t, engine.Compiled("Hi {name}"), engine.Compiled("Hi {name}"))

	engine.ClearCache()
	require.Equal(t, 0, engine.Len())
}

func TestEngine_ConcurrentRender(t *testing.T) {
	t.Parallel()

	engine := template.NewEngine()

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			tmpl := strings.Repeat("{name}", n%4+1)
			out := engine.Render(tmpl, map[string]string{"name": "x"})
			assert.Equal(t, strings.Repeat("x", n%4+1), out)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 4, engine.Len())
}
