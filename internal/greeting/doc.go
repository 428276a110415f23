// Package greeting assembles localized greetings from category templates.
//
// A Machine keeps one template per Category, seeded with defaults:
//   - formal: "{salutation} {title} {name}, good {timeOfDay}. {customMessage}"
//   - casual: "Hey {name}! {timeOfDay} — {customMessage}"
//   - friendly: "Hi {name}, hope you're having a lovely {timeOfDay}! {customMessage}"
//   - humorous: "Yo {name}! It's {timeOfDay} — stay awesome. {customMessage}"
//   - custom: "{customMessage}"
//
// Example usage:
//
//	machine := greeting.NewMachine(locale.NewResolver(locale.Default()), logger)
//
//	user := &greeting.User{Name: "Alice", Title: "Dr.", LocaleTag: "en"}
//	text, err := machine.GenerateGreeting(user, greeting.CategoryFormal, user.Locale(), "Welcome.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: Dear Dr. Alice, good morning. Welcome.
//
// The time of day comes from a Clock; use WithClock or FixedHour for
// deterministic output.
package greeting
