package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aescanero/greeting-machine/internal/greeting"
	"github.com/aescanero/greeting-machine/internal/locale"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type demoCase struct {
	label    string
	category greeting.Category
	message  string
}

var demoCases = []demoCase{
	{label: "Formal", category: greeting.CategoryFormal, message: "Welcome to our system."},
	{label: "Casual", category: greeting.CategoryCasual, message: "Nice to see you!"},
	{label: "Friendly", category: greeting.CategoryFriendly, message: ""},
	{label: "Humorous", category: greeting.CategoryHumorous, message: "Don't forget your coffee."},
	{label: "Custom", category: greeting.CategoryCustom, message: "This is a one-off announcement."},
}

func main() {
	logger := newConsoleLogger()
	defer func() { _ = logger.Sync() }()

	machine := greeting.NewMachine(locale.NewResolver(locale.Default()), logger)

	if err := machine.RegisterTemplate(greeting.CategoryCustom,
		"[CUSTOM GREETING] {salutation} {name}! ({timeOfDay}) -> {customMessage}"); err != nil {
		logger.Fatal("failed to register custom template", zap.Error(err))
	}

	users := []*greeting.User{
		{Name: "Alice", Title: "Dr.", LocaleTag: "en"},
		{Name: "Carlos", LocaleTag: "es"},
		{Name: "François", Title: "M.", LocaleTag: "fr"},
		{LocaleTag: "en"},
	}

	fmt.Println("=== Greeting Machine Demo ===")

	for _, u := range users {
		name := u.Name
		if name == "" {
			name = "<unknown>"
		}
		fmt.Printf("\n-- For user: %s (locale=%s) --\n", name, u.LocaleTag)

		for _, c := range demoCases {
			g, err := machine.GenerateGreeting(u, c.category, u.LocaleTag, c.message)
			if err != nil {
				logger.Error("greeting failed", zap.String("category", string(c.category)), zap.Error(err))
				continue
			}
			fmt.Printf("%s: %s\n", c.label, g)
		}
	}

	fmt.Println("\n-- Locale override example --")
	bob := &greeting.User{Name: "Bob", Title: "Mr.", LocaleTag: "en"}
	if g, err := machine.GenerateGreeting(bob, greeting.CategoryFormal, "es", "Bienvenido!"); err == nil {
		fmt.Println("Bob formal in Spanish: " + g)
	}

	fmt.Println("\n-- Error handling examples --")
	if _, err := machine.GenerateGreeting(nil, greeting.CategoryCasual, "en", "test"); err != nil {
		fmt.Println("Expected error: " + err.Error())
	}

	stamp := "Current time is " + time.Now().Format("15:04:05.999999999")
	timeLord := &greeting.User{Name: "TimeLord", LocaleTag: "en"}
	if g, err := machine.GenerateGreeting(timeLord, greeting.CategoryCasual, "en", stamp); err == nil {
		fmt.Println("\nTime stamped greeting: " + g)
	}

	fmt.Println("\n=== Demo finished ===")
}

// newConsoleLogger keeps diagnostics on stderr so stdout carries only the demo output
func newConsoleLogger() *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		zapcore.WarnLevel,
	)
	return zap.New(core)
}
