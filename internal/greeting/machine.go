package greeting

import (
	"fmt"

	"github.com/aescanero/greeting-machine/internal/locale"
	"github.com/aescanero/greeting-machine/internal/template"
	"go.uber.org/zap"
)

// Variable names available to templates.
const (
	VarSalutation    = "salutation"
	VarTitle         = "title"
	VarName          = "name"
	VarTimeOfDay     = "timeOfDay"
	VarCustomMessage = "customMessage"
)

const (
	salutationKey     = "salutation"
	defaultSalutation = "Hello"
	defaultName       = "there"
)

// Machine assembles greetings from the template registry and the locale
// resolver.
type Machine struct {
	registry        *Registry
	resolver        *locale.Resolver
	engine          *template.Engine
	clock           Clock
	defaultCategory Category
	logger          *zap.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock sets the clock used to pick the time of day.
func WithClock(clock Clock) Option {
	return func(m *Machine) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithDefaultCategory sets the category used when none is requested.
// Invalid categories are ignored.
func WithDefaultCategory(c Category) Option {
	return func(m *Machine) {
		if c.Valid() {
			m.defaultCategory = c
		}
	}
}

// NewMachine creates a new greeting machine. A nil resolver uses the
// built-in dictionary; a nil logger discards logs.
func NewMachine(resolver *locale.Resolver, logger *zap.Logger, opts ...Option) *Machine {
	if resolver == nil {
		resolver = locale.NewResolver(locale.Default())
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Machine{
		registry:        NewRegistry(),
		resolver:        resolver,
		engine:          template.NewEngine(),
		clock:           SystemClock,
		defaultCategory: CategoryCasual,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterTemplate replaces the template for a category. The new template
// is used by the next GenerateGreeting call. An empty category or an empty
// template is rejected with ErrInvalidTemplate.
func (m *Machine) RegisterTemplate(c Category, tmpl string) error {
	if c == "" || tmpl == "" {
		return ErrInvalidTemplate
	}
	if !c.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidTemplate, c)
	}

	m.registry.Register(c, tmpl)

	m.logger.Info("template registered",
		zap.String("category", string(c)),
		zap.Strings("placeholders", m.engine.Compiled(tmpl).Placeholders()),
	)
	return nil
}

// RegisterTemplates registers every entry of templates in category order.
func (m *Machine) RegisterTemplates(templates map[Category]string) error {
	for _, c := range Categories() {
		tmpl, ok := templates[c]
		if !ok {
			continue
		}
		if err := m.RegisterTemplate(c, tmpl); err != nil {
			return fmt.Errorf("registering %s template: %w", c, err)
		}
	}
	return nil
}

// Templates returns a copy of the registered templates.
func (m *Machine) Templates() map[Category]string {
	return m.registry.Snapshot()
}

// DefaultCategory returns the category used when none is requested.
func (m *Machine) DefaultCategory() Category {
	return m.defaultCategory
}

// GenerateGreeting renders a greeting for user. An empty category means the
// default category, an empty localeTag the resolver's default language.
// Only a nil user is an error.
func (m *Machine) GenerateGreeting(user *User, c Category, localeTag, customMessage string) (string, error) {
	if user == nil {
		return "", ErrNilUser
	}
	if c == "" {
		c = m.defaultCategory
	}

	tmpl, ok := m.registry.Lookup(c)
	if !ok {
		m.logger.Warn("no template registered, using fallback",
			zap.String("category", string(c)),
		)
		tmpl = fallbackTemplate
	}

	timeOfDayKey := TimeOfDayKey(m.clock.Now().Hour())

	salutation := m.resolver.Resolve(salutationKey, localeTag)
	if salutation == "" {
		salutation = defaultSalutation
	}
	name := user.Name
	if name == "" {
		name = defaultName
	}

	vars := map[string]string{
		VarSalutation:    salutation,
		VarTitle:         user.Title,
		VarName:          name,
		VarTimeOfDay:     m.resolver.Resolve(timeOfDayKey, localeTag),
		VarCustomMessage: customMessage,
	}

	m.logger.Debug("rendering greeting",
		zap.String("category", string(c)),
		zap.String("locale", localeTag),
		zap.String("time_of_day", timeOfDayKey),
	)

	return m.engine.Render(tmpl, vars), nil
}
