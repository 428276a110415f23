package greeting

import "github.com/aescanero/greeting-machine/internal/locale"

// User is the person being greeted. Every field is optional.
type User struct {
	Name      string `json:"name" yaml:"name"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	LocaleTag string `json:"locale,omitempty" yaml:"locale,omitempty"`
}

// Locale returns the user's locale tag, or the default language when unset.
func (u *User) Locale() string {
	if u.LocaleTag == "" {
		return locale.DefaultLanguage
	}
	return u.LocaleTag
}
